package main

import (
	"context"
	"errors"
	"fmt"

	"timely/internal/app"
	"timely/internal/models"
	"timely/internal/threads"
	"timely/internal/timeline"

	"github.com/spf13/cobra"
)

type appRunner func(fn runFunc) func(cmd *cobra.Command, args []string) error

func newThreadsCmd(withApp appRunner) *cobra.Command {
	var clientID, view, query string

	cmd := &cobra.Command{
		Use:   "threads",
		Short: "List the message threads of a client",
		RunE: withApp(func(ctx context.Context, a *app.App) (any, error) {
			v, ok := threads.ParseView(view)
			if !ok {
				return nil, fmt.Errorf("invalid view: %s", view)
			}
			list, err := a.Mailbox.Threads(ctx, clientID, v, query)
			if err != nil {
				return nil, err
			}
			return models.ThreadListResponse{Success: true, View: string(v), Query: query, Threads: list, Total: len(list)}, nil
		}),
	}
	cmd.Flags().StringVar(&clientID, "client", "", "client ID")
	cmd.Flags().StringVar(&view, "view", string(threads.ViewInbox), "inbox, starred, archived or trash")
	cmd.Flags().StringVar(&query, "q", "", "search text")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}

func newTimelineCmd(withApp appRunner) *cobra.Command {
	var clientID, email, order, category string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the merged activity timeline of a client",
		RunE: withApp(func(ctx context.Context, a *app.App) (any, error) {
			o, ok := timeline.ParseOrder(order)
			if !ok {
				return nil, fmt.Errorf("invalid order: %s", order)
			}
			scope := a.Resolver.Resolve(ctx, clientID, email)
			result := a.Aggregator.Aggregate(ctx, scope)
			entries := timeline.Sort(timeline.FilterCategory(result.Entries, category), o, a.Policy, a.TimelineLogger)
			return models.TimelineResponse{
				Success:       true,
				Order:         string(o),
				Entries:       entries,
				Total:         len(entries),
				FailedSources: result.Failed,
			}, nil
		}),
	}
	cmd.Flags().StringVar(&clientID, "client", "", "client ID")
	cmd.Flags().StringVar(&email, "email", "", "client email used when the profile cannot be loaded")
	cmd.Flags().StringVar(&order, "order", string(timeline.OrderDesc), "asc or desc")
	cmd.Flags().StringVar(&category, "category", "", "only entries of this category")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}

func newRequestsCmd(withApp appRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Manage document requests",
	}

	var clientID, status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the document requests of a client",
		RunE: withApp(func(ctx context.Context, a *app.App) (any, error) {
			if status != "" && !models.ValidRequestStatus(status) {
				return nil, fmt.Errorf("invalid status: %s", status)
			}
			items, err := a.Documents.List(ctx, clientID, status)
			if err != nil {
				return nil, err
			}
			return models.RequestListResponse{Success: true, Requests: items, Total: len(items)}, nil
		}),
	}
	list.Flags().StringVar(&clientID, "client", "", "client ID")
	list.Flags().StringVar(&status, "status", "", "pending, uploaded, approved or rejected")
	_ = list.MarkFlagRequired("client")

	var upload models.Upload
	fulfill := &cobra.Command{
		Use:   "fulfill <request-id>",
		Short: "Mark a document request as uploaded",
		Args:  cobra.ExactArgs(1),
	}
	fulfill.RunE = func(cmd *cobra.Command, args []string) error {
		requestID := args[0]
		return withApp(func(ctx context.Context, a *app.App) (any, error) {
			if upload.DocumentID == "" {
				return nil, errors.New("--document-id is required")
			}
			req, updated, err := a.Documents.Fulfill(ctx, requestID, upload)
			if err != nil {
				return nil, err
			}
			return models.FulfillResponse{Success: true, Updated: updated, Request: req}, nil
		})(cmd, args)
	}
	fulfill.Flags().StringVar(&upload.DocumentID, "document-id", "", "ID of the uploaded document")
	fulfill.Flags().StringVar(&upload.DocumentName, "document-name", "", "file name of the uploaded document")
	fulfill.Flags().StringVar(&upload.UploadedBy, "uploaded-by", "", "who uploaded the document")

	cmd.AddCommand(list, fulfill)
	return cmd
}

func newImportCmd(withApp appRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load JSON exports into storage",
	}

	var clientID, messagesFile string
	messages := &cobra.Command{
		Use:   "messages",
		Short: "Import messages of a client from a JSON array",
		RunE: withApp(func(ctx context.Context, a *app.App) (any, error) {
			var incoming []models.Message
			if err := readJSONFile(messagesFile, &incoming); err != nil {
				return nil, err
			}
			n, err := a.Mailbox.Import(ctx, clientID, incoming)
			if err != nil {
				return nil, err
			}
			return models.MutationResponse{Success: true, Updated: n > 0, Count: n}, nil
		}),
	}
	messages.Flags().StringVar(&clientID, "client", "", "client ID")
	messages.Flags().StringVar(&messagesFile, "file", "", "path to a JSON array of messages")
	_ = messages.MarkFlagRequired("client")
	_ = messages.MarkFlagRequired("file")

	var requestsFile string
	reqs := &cobra.Command{
		Use:   "requests",
		Short: "Import document requests from a JSON array",
		RunE: withApp(func(ctx context.Context, a *app.App) (any, error) {
			var incoming []models.DocumentRequest
			if err := readJSONFile(requestsFile, &incoming); err != nil {
				return nil, err
			}
			n, err := a.Documents.Import(ctx, incoming)
			if err != nil {
				return nil, err
			}
			return models.MutationResponse{Success: true, Updated: n > 0, Count: n}, nil
		}),
	}
	reqs.Flags().StringVar(&requestsFile, "file", "", "path to a JSON array of document requests")
	_ = reqs.MarkFlagRequired("file")

	cmd.AddCommand(messages, reqs)
	return cmd
}
