package app

import (
	"context"
	"fmt"
	"strings"

	"gengo-go/internal/callback"
)

type CallbackOptions struct {
	Addr string
	Path string
}

// RunCallbackServe receives status and comment callbacks until ctx is done.
func RunCallbackServe(ctx context.Context, opts Options, c CallbackOptions) error {
	rt, err := loadRunEnv(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	addr := c.Addr
	if addr == "" {
		addr = rt.cfg.Callback.Addr
	}
	path := c.Path
	if path == "" {
		path = rt.cfg.Callback.Path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	srv := callback.NewServer(rt.log.Zerolog(), callback.Options{Addr: addr, Path: path}, func(ev callback.Event) {
		logCallback(rt.log, ev)
	})
	rt.log.Info(fmt.Sprintf("listening for callbacks on http://%s%s", addr, path))
	return srv.Start(ctx)
}

func logCallback(log *Logger, ev callback.Event) {
	id := intText(ev.JobID)
	switch {
	case ev.Job != nil:
		log.Info(fmt.Sprintf("job %s: %s", id, ev.Job.Status))
		log.Event("callback_job", map[string]any{"job_id": id, "status": string(ev.Job.Status)})
	case ev.Comment != nil:
		log.Info(fmt.Sprintf("job %s: new comment from %s: %s", id, ev.Comment.Author, ev.Comment.Body))
		log.Event("callback_comment", map[string]any{"job_id": id, "author": string(ev.Comment.Author), "body": ev.Comment.Body})
	}
}
