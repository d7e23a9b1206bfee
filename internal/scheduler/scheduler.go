package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"TrendSentry/internal/calculator"
	"TrendSentry/internal/collector"
	"TrendSentry/internal/model"
	"TrendSentry/internal/notifier"
	"TrendSentry/internal/position"
	"TrendSentry/internal/recorder"
	"TrendSentry/internal/strategy"
)

// Scheduler drives one strategy cycle per trading day and serves
// Telegram commands between cycles.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Tracker   *position.Tracker
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, tr *position.Tracker, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Tracker:   tr,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// Register registers the daily strategy cycle.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.runCycle); err != nil {
		return fmt.Errorf("register daily cycle: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes one strategy cycle immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.runCycle()
}

// runCycle is one full invocation: fetch, enrich, decide, apply, report,
// record. Any error aborts the cycle before the tracker is touched, so a
// failed cycle never leaves partial position state.
func (s *Scheduler) runCycle() {
	log.Printf("[INFO] running daily strategy cycle for %s", s.Collector.Symbol)

	series, err := s.Collector.Collect()
	if err != nil {
		s.failCycle("数据采集失败", err)
		return
	}

	rows, err := calculator.Enrich(series.StockBars)
	if err != nil {
		s.failCycle("指标计算失败", err)
		return
	}
	if err := calculator.CheckWarmup(rows); err != nil {
		s.failCycle("历史数据不足", err)
		return
	}

	latest := rows[len(rows)-1]
	before := s.Tracker.GetState()

	decision, err := strategy.Evaluate(latest, before)
	if err != nil {
		s.failCycle("信号生成失败", err)
		return
	}

	entry := s.Tracker.Apply(decision)
	after := s.Tracker.GetState()
	log.Printf("[INFO] decision %s @ %.2f (%s), trade log entry %s",
		decision.Action, decision.Price, decision.Reason, entry.ID)

	indexClose, indexMA20 := indexContext(series.IndexBars)
	report := notifier.FormatDecisionReport(series.Symbol, latest, decision,
		before, after, series.IndexSymbol, indexClose, indexMA20)
	s.trySend(report)

	if err := s.Recorder.RecordDecision(&recorder.DecisionRecord{
		Symbol:   series.Symbol,
		Row:      latest,
		Decision: decision,
		Before:   before,
		After:    after,
	}); err != nil {
		log.Printf("[ERROR] record decision: %v", err)
	}
}

// indexContext derives the benchmark context line for the report: the
// latest index close and its MA20. The decision tree does not consume
// either value.
func indexContext(indexBars []model.OHLCV) (indexClose, indexMA20 float64) {
	if len(indexBars) == 0 {
		return 0, 0
	}
	closes := make([]float64, len(indexBars))
	for i, b := range indexBars {
		closes[i] = b.Close
	}
	indexClose = closes[len(closes)-1]
	ma, err := calculator.CalculateSMA(closes, calculator.MidMAPeriod)
	if err != nil {
		log.Printf("[WARN] index MA20 unavailable: %v", err)
		return indexClose, 0
	}
	return indexClose, ma
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/run", "立即运行":
		s.runCycle()
		return ""
	case "/position", "查看持仓":
		return notifier.FormatPositionStatus(s.Tracker.GetState())
	case "/log", "查看交易记录":
		return notifier.FormatTradeLog(s.Tracker.LastN(10))
	default:
		return "可用命令:\n• /run 立即运行\n• /position 查看持仓\n• /log 查看交易记录"
	}
}

func (s *Scheduler) failCycle(stage string, err error) {
	log.Printf("[ERROR] cycle aborted: %s: %v", stage, err)
	s.trySend(fmt.Sprintf("❌ 策略执行异常: %s\n\n%v", stage, err))
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
