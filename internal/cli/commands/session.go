package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaflat/internal/config"
	"github.com/goliatone/go-schemaflat/internal/logging"
	internalDecoder "github.com/goliatone/go-schemaflat/internal/openapi/decoder"
	internalLoader "github.com/goliatone/go-schemaflat/internal/openapi/loader"
	internalValidator "github.com/goliatone/go-schemaflat/internal/openapi/validator"
	"github.com/goliatone/go-schemaflat/pkg/flatten"
	pkgopenapi "github.com/goliatone/go-schemaflat/pkg/openapi"
	"github.com/goliatone/go-schemaflat/pkg/orchestrator"
)

// session bundles what every command needs after settings are resolved.
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	orch    *orchestrator.Orchestrator
	noColor bool
}

func newSession(cmd *cobra.Command) (*session, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: configFile, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	loaderOpts := pkgopenapi.NewLoaderOptions(
		pkgopenapi.WithHTTPFallback(cfg.HTTP.Timeout),
		pkgopenapi.WithMaxBytes(cfg.HTTP.MaxBytes),
	)
	var decoderOpts []pkgopenapi.DecoderOption
	if cfg.Validate {
		decoderOpts = append(decoderOpts, pkgopenapi.WithValidator(internalValidator.New()))
	}

	orch := orchestrator.New(
		orchestrator.WithLoader(internalLoader.New(loaderOpts)),
		orchestrator.WithDecoder(internalDecoder.New(pkgopenapi.NewDecoderOptions(decoderOpts...))),
		orchestrator.WithLogger(logger),
		orchestrator.WithDefaultFormat(cfg.Format),
		orchestrator.WithDefaultRoot(cfg.DefaultRoot),
		orchestrator.WithFlattenOptions(flatten.WithStrictReferences(cfg.Strict)),
	)

	noColor, _ := cmd.Flags().GetBool("no-color")
	return &session{cfg: cfg, logger: logger, orch: orch, noColor: noColor}, nil
}

// request builds an orchestrator request for the configured input and root.
func (s *session) request() (orchestrator.Request, error) {
	src, err := pkgopenapi.SourceFor(s.cfg.Input)
	if err != nil {
		return orchestrator.Request{}, err
	}
	return orchestrator.Request{Source: src, Root: s.cfg.Root}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}
