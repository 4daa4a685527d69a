package app

import (
	"context"
	"errors"
	"time"

	"github.com/songzhibin97/cryptogainers/internal/chart"
	"github.com/songzhibin97/cryptogainers/internal/data"
	"github.com/songzhibin97/cryptogainers/internal/gainers"
	"github.com/songzhibin97/cryptogainers/internal/models"
)

type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

type ReportWriter interface {
	Write(ctx context.Context, entries []models.GainerEntry, timestamp string) (string, error)
}

type ChartRenderer interface {
	Render(ctx context.Context, entries []models.GainerEntry, timestamp string) (string, error)
}

type Presenter interface {
	Print(entries []models.GainerEntry, topN int) error
}

type Pipeline struct {
	pageSize  int
	topN      int
	collector data.DataCollector
	writer    ReportWriter
	renderer  ChartRenderer
	presenter Presenter
	logger    Logger
	now       func() time.Time
}

func NewPipeline(
	pageSize, topN int,
	collector data.DataCollector,
	writer ReportWriter,
	renderer ChartRenderer,
	presenter Presenter,
	logger Logger,
) *Pipeline {
	return &Pipeline{
		pageSize:  pageSize,
		topN:      topN,
		collector: collector,
		writer:    writer,
		renderer:  renderer,
		presenter: presenter,
		logger:    logger,
		now:       time.Now,
	}
}

// Run 执行一次完整的涨幅榜报告
//
// A fetch failure or an empty market page ends the run without artifacts and
// without error. A chart failure is logged and ignored. Only a report that
// cannot be stored is returned as an error.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("Script started.")
	timestamp := models.TimestampKey(p.now())

	// 1. 拉取行情
	records, err := p.collector.Fetch(ctx, p.pageSize)
	if err != nil {
		// collector 已记录失败原因, 本次视为无数据
		if !data.IsFetchError(err) {
			p.logger.Error("Failed to fetch coin data", "err", err)
		}
		records = nil
	}

	if len(records) == 0 {
		p.logger.Info("Script finished.")
		return nil
	}

	// 2. 选出涨幅榜
	entries := gainers.Select(records, p.topN)

	// 3. 终端展示
	if err := p.presenter.Print(entries, p.topN); err != nil {
		p.logger.Error("Failed to print gainers", "err", err)
	}

	// 4. 保存报告, 失败时终止
	if _, err := p.writer.Write(ctx, entries, timestamp); err != nil {
		return err
	}

	// 5. 生成图表, 失败不影响报告
	if _, err := p.renderer.Render(ctx, entries, timestamp); err != nil {
		var re *chart.RenderError
		if !errors.As(err, &re) {
			p.logger.Error("Chart generation failed", "err", err)
		}
	}

	p.logger.Info("Script finished.")
	return nil
}
