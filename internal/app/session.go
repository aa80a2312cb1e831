package app

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gengo-go/internal/config"
	"gengo-go/internal/output"
	"gengo-go/sdk/gengo"
)

// Options are the global flags shared by every command.
type Options struct {
	ConfigPath string
	Verbose    bool
	LogFile    string
	Sandbox    bool
	JSON       bool
}

type runEnv struct {
	cfg config.Config
	log *Logger
	out *output.Printer
}

type session struct {
	runEnv
	keys    config.Keys
	sandbox bool
	api     *gengo.Client
}

func loadRunEnv(opts Options) (*runEnv, error) {
	cfgPath, err := config.ResolvePath(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrInit(cfgPath)
	if err != nil {
		return nil, err
	}
	log, err := NewLoggerWithLevel(opts.Verbose, opts.LogFile, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if opts.JSON {
		log.UseStderr()
	}
	return &runEnv{cfg: cfg, log: log, out: &output.Printer{JSON: opts.JSON}}, nil
}

func (r *runEnv) close() {
	_ = r.log.Close()
}

func loadCredentialForRun() (config.Keys, error) {
	keys, err := config.LoadKeys()
	if err != nil {
		if errors.Is(err, config.ErrCredentialNotConfigured) {
			return config.Keys{}, fmt.Errorf("API keys are not configured, run\ngengo set key <PUBLIC_KEY> <PRIVATE_KEY>")
		}
		return config.Keys{}, err
	}
	return keys, nil
}

func openSession(opts Options) (*session, error) {
	keys, err := loadCredentialForRun()
	if err != nil {
		return nil, err
	}
	rt, err := loadRunEnv(opts)
	if err != nil {
		return nil, err
	}
	sandbox := opts.Sandbox || rt.cfg.API.Sandbox
	cred := gengo.NewCredential(keys.PublicKey, keys.PrivateKey, sandbox)
	api := gengo.New(cred,
		gengo.WithBaseURL(rt.cfg.API.BaseURL),
		gengo.WithTimeout(time.Duration(rt.cfg.API.TimeoutSecond)*time.Second),
		gengo.WithTrace(httpTraceLogger(rt.log)),
	)
	return &session{runEnv: *rt, keys: keys, sandbox: sandbox, api: api}, nil
}

var (
	secretParam = regexp.MustCompile(`(api_key|api_sig)=[^&\s]*`)
	secretPart  = regexp.MustCompile(`(name="(?:api_key|api_sig)"(?:\r?\n[^\r\n]+)*\r?\n\r?\n)[^\r\n]*`)
)

// redactSecrets masks auth values in query strings, form bodies and
// multipart bodies.
func redactSecrets(s string) string {
	s = secretParam.ReplaceAllString(s, "$1=***")
	return secretPart.ReplaceAllString(s, "${1}***")
}

func httpTraceLogger(log *Logger) func(gengo.TraceEvent) {
	return func(ev gengo.TraceEvent) {
		log.Event("gengo_http_"+ev.Stage, map[string]any{
			"request_id":  ev.RequestID,
			"method":      ev.Method,
			"url":         redactSecrets(ev.URL),
			"status_code": ev.StatusCode,
			"duration_ms": ev.DurationMs,
			"error":       ev.Error,
		})
		if ev.Request == "" && ev.Response == "" {
			return
		}
		log.Debug("gengo_http_body", map[string]any{
			"request_id": ev.RequestID,
			"request":    redactSecrets(ev.Request),
			"response":   ev.Response,
		})
	}
}
