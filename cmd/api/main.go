package main

// @title Counsel Interview APIs
// @version 1.0
// @description Structured counseling interview engine with appointment booking and a LINE channel.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	_ "counsel-interview/docs"
	protocol "counsel-interview/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Fatalln(err)
	}
}
