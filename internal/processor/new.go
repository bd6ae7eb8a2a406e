package processor

import (
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/export"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcriber"
)

type implProcessor struct {
	cfg         *config.Config
	transcriber transcriber.Transcriber
	exporter    export.Exporter
	logger      logger.Logger
	now         func() time.Time
}

// New creates a new Processor instance. exporter may be nil when docx output
// is disabled.
func New(cfg *config.Config, tr transcriber.Transcriber, exporter export.Exporter, log logger.Logger) Processor {
	return &implProcessor{
		cfg:         cfg,
		transcriber: tr,
		exporter:    exporter,
		logger:      log,
		now:         time.Now,
	}
}
