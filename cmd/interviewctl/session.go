package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"counsel-interview/configs"
	"counsel-interview/internal/application"
	"counsel-interview/internal/domain"
	"counsel-interview/pkg/promptset"
	"counsel-interview/protocal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSessionCommand(envr environment, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and recover stored interview sessions",
	}
	cmd.AddCommand(newInspectCommand(envr, opts))
	cmd.AddCommand(newRepairCommand(envr, opts))
	cmd.AddCommand(newResetCommand(envr, opts))
	return cmd
}

// withStorage opens the stores for one command and closes them afterwards
func withStorage(cmd *cobra.Command, envr environment, opts *rootOptions, fn func(cfg *configs.Config, storage *protocal.Storage) error) error {
	cfg := envr.loadConfig(opts.configDir, opts.env)
	storage, err := envr.buildStorage(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer storage.Close()
	return fn(cfg, storage)
}

func newInspectCommand(envr environment, opts *rootOptions) *cobra.Command {
	var showRaw bool
	cmd := &cobra.Command{
		Use:   "inspect <participant_id>",
		Short: "Show a stored session and whether it decodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(cmd, envr, opts, func(cfg *configs.Config, storage *protocal.Storage) error {
				return inspectSession(cmd.Context(), cmd.OutOrStdout(), cfg, storage, args[0], showRaw)
			})
		},
	}
	cmd.Flags().BoolVar(&showRaw, "raw", false, "print the stored payload")
	return cmd
}

func inspectSession(ctx context.Context, out io.Writer, cfg *configs.Config, storage *protocal.Storage, participantID string, showRaw bool) error {
	raw, err := storage.Inspector.GetRawSession(ctx, participantID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		fmt.Fprintf(out, "participant: %s\nno session stored\n", participantID)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "participant: %s\npayload:     %d bytes\n", participantID, len(raw))
	if showRaw {
		fmt.Fprintf(out, "%s\n", raw)
	}

	session, err := storage.Sessions.GetSession(ctx, participantID)
	if errors.Is(err, domain.ErrCorruptSession) {
		fmt.Fprintf(out, "state:       corrupt (%v)\nrecover with: interviewctl session repair %s\n", err, participantID)
		return nil
	}
	if err != nil {
		return err
	}

	set, err := promptset.Load(cfg.Interview.PromptSet)
	if err != nil {
		return err
	}
	progress := domain.InferProgress(session.Messages, set.Topics, domain.NewSubstringTopicMatcher(set.TopicPrefixRunes, set.TopicMarker))
	completion := domain.NewPhraseCompletionDetector(set.ClosingPhrases).Detect(session.Messages)

	fmt.Fprintf(out, "session:     %s\n", session.SessionID)
	fmt.Fprintf(out, "status:      %s\n", session.Status)
	fmt.Fprintf(out, "version:     %d\n", session.Version)
	fmt.Fprintf(out, "messages:    %d (participant turns %d)\n", len(session.Messages), completion.ParticipantTurnCount)
	fmt.Fprintf(out, "complete:    %v\n", completion.IsComplete)
	fmt.Fprintf(out, "topics done: %v\n", progress.CompletedTopics)
	if progress.AllDone() {
		fmt.Fprintf(out, "next topic:  none\n")
	} else {
		fmt.Fprintf(out, "next topic:  %d\n", progress.NextTopicID)
	}
	fmt.Fprintf(out, "report:      %v\n", session.HasReport())
	return nil
}

func newRepairCommand(envr environment, opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "repair <participant_id>",
		Short: "Replace a corrupt session record with a fresh empty session",
		Long:  "Replaces the stored record with a new empty session. Readable sessions are left alone unless --force is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(cmd, envr, opts, func(cfg *configs.Config, storage *protocal.Storage) error {
				return repairSession(cmd.Context(), cmd.OutOrStdout(), cfg, storage, args[0], force)
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace the session even when it decodes")
	return cmd
}

func repairSession(ctx context.Context, out io.Writer, cfg *configs.Config, storage *protocal.Storage, participantID string, force bool) error {
	raw, err := storage.Inspector.GetRawSession(ctx, participantID)
	if err != nil {
		return err
	}

	_, err = storage.Sessions.GetSession(ctx, participantID)
	switch {
	case err == nil && !force:
		return fmt.Errorf("session for %s is readable; use --force or `session reset`", participantID)
	case err != nil && !errors.Is(err, domain.ErrCorruptSession):
		return err
	}

	logrus.Warnf("Discarding stored session: participant=%s, payload=%d bytes", participantID, len(raw))
	session, err := application.NewSessionStore(storage.Sessions, cfg.Store.MaxAttempts).Reset(ctx, participantID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "repaired %s: new session %s (discarded %d bytes)\n", participantID, session.SessionID, len(raw))
	return nil
}

func newResetCommand(envr environment, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <participant_id>",
		Short: "Discard the transcript and start a new session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(cmd, envr, opts, func(cfg *configs.Config, storage *protocal.Storage) error {
				session, err := application.NewSessionStore(storage.Sessions, cfg.Store.MaxAttempts).Reset(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reset %s: new session %s\n", args[0], session.SessionID)
				return nil
			})
		},
	}
}
