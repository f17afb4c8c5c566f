package protocal

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"counsel-interview/configs"
	httpAdapter "counsel-interview/internal/adapters/input/http"
	"counsel-interview/internal/adapters/output/events"
	lineAdapter "counsel-interview/internal/adapters/output/line"
	"counsel-interview/internal/adapters/output/postgres"
	"counsel-interview/internal/application"
	"counsel-interview/internal/domain"
	"counsel-interview/pkg/promptset"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	conf := configs.GetViper()
	if conf.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Info(conf.App.Env)

	ctx := context.Background()

	// Output adapters
	storage, err := BuildStorage(ctx, conf)
	if err != nil {
		return err
	}
	defer storage.Close()

	appointmentDB, err := storage.AppointmentDB(conf)
	if err != nil {
		return err
	}

	generator, err := BuildGenerator(ctx, conf)
	if err != nil {
		return err
	}

	prompts, err := promptset.Load(conf.Interview.PromptSet)
	if err != nil {
		return err
	}

	bus := events.NewBus(events.NewLogrusAdapter(logrus.StandardLogger()))
	defer bus.Close()

	// Application services
	store := application.NewSessionStore(storage.Sessions, conf.Store.MaxAttempts)
	interviewSrv := application.NewInterviewService(store, generator, bus, prompts, conf.Interview.MinMessages)
	reportSrv := application.NewReportService(store, generator, bus, prompts, conf.Interview.MinMessages)
	counselorSrv := application.NewCounselorService(store, generator, prompts)
	appointmentSrv := application.NewAppointmentService(postgres.NewAppointmentRepository(appointmentDB.Conn))

	if conf.Interview.AutoAnalyze {
		worker := application.NewAnalysisWorker(reportSrv)
		if err := bus.Subscribe(domain.InterviewEventCompleted, worker.HandleEvent); err != nil {
			return err
		}
		logrus.Info("Automatic analysis enabled")
	}

	// Input adapters
	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	hdl := httpAdapter.New(appointmentSrv, appointmentDB)
	interviewHdl := httpAdapter.NewInterviewHandler(interviewSrv, reportSrv)
	counselorHdl := httpAdapter.NewCounselorHandler(counselorSrv)

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", hdl.HealthCheck)

	api := app.Group("/v1/api")
	{
		api.Post("/appointment", hdl.CreateAppointment)
		api.Put("/appointment", hdl.UpdateAppointment)
		api.Delete("/appointment/:id", hdl.DeleteAppointment)
		api.Get("/appointment/:id", hdl.GetAppointment)
		api.Get("/appointment", hdl.GetAppointment)
	}
	interviewHdl.Register(api.Group("/interview"))
	counselorHdl.Register(api.Group("/ai"))

	if conf.Line.Enabled {
		lineClient, err := lineAdapter.NewLineClientAdapter(conf.Line.ChannelToken, "")
		if err != nil {
			return err
		}
		lineWebhookSrv := application.NewLineWebhookService(lineClient, interviewSrv, reportSrv)
		lineWebhookHdl := httpAdapter.NewLineWebhookHandler(lineWebhookSrv, conf.Line.ChannelSecret)

		webhook := app.Group("/webhook")
		{
			webhook.Post("/line", lineWebhookHdl.HandleWebhook)
		}
		logrus.Info("LINE webhook enabled")
	}

	if conf.App.StaticDir != "" {
		app.Static("/", conf.App.StaticDir)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logrus.Info("Gracefull shut down ...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("Error when shutdown server: %v", err)
		}
	}()

	logrus.Println("Listening on port: ", conf.App.Port)
	return app.Listen(":" + conf.App.Port)
}
