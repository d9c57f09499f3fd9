package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"aspirevote-backend/cmd/aspirevote/directory"
	"aspirevote-backend/cmd/aspirevote/model"
	"aspirevote-backend/cmd/aspirevote/phase"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the events available to the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDirectory(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.Load(cmd.Context()); err != nil && !redirected(err) {
			// failures leave the list empty
			fmt.Fprintln(cmd.ErrOrStderr(), "could not load events:", err)
		}
		printEvents(cmd.OutOrStdout(), d.Events(), time.Now())
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open <event-id>",
	Short: "Show where selecting an event takes the signed-in user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDirectory(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.Load(cmd.Context()); redirected(err) {
			return nil
		}

		_, err = d.Open(args[0])
		if errors.Is(err, phase.ErrEventNotActive) {
			fmt.Fprintln(cmd.ErrOrStderr(), "event is not active")
			return nil
		}
		return err
	},
}

// openDirectory builds a directory whose navigator prints the destination path.
func openDirectory(cmd *cobra.Command) (*directory.Directory, error) {
	cfg, err := loadClientCfg()
	if err != nil {
		return nil, err
	}
	configureLogging(cfg.Environment, cfg.LogLevel)

	session, err := directory.LoadSession(cfg.UserInfoPath, cfg.TokenPath)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	nav := directory.NavigatorFunc(func(dest phase.Destination) {
		fmt.Fprintln(out, dest.Path())
	})

	return directory.New(session, directory.NewClient(cfg.APIURL, cfg.Timeout), nav), nil
}

func redirected(err error) bool {
	return errors.Is(err, directory.ErrUnauthenticated) || errors.Is(err, directory.ErrUnauthorized)
}

func printEvents(w io.Writer, events []model.Event, now time.Time) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events available at the moment.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tACTIVE\tPHASE")
	for _, event := range events {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", event.ID, event.Name, event.IsActive, phase.Current(event, now))
	}
	tw.Flush()
}
