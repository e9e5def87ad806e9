package scheduler

import (
	"context"
	"fmt"
	"log"

	"VaultSentinel/internal/engine"
	"VaultSentinel/internal/notifier"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the vault's cron tasks: the periodic retry sweep of
// quorum-met requests and the daily summary report.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *engine.Engine
	Notifier *notifier.TelegramNotifier
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, eng *engine.Engine, tn *notifier.TelegramNotifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   eng,
		Notifier: tn,
		Ctx:      ctx,
	}
}

// RegisterAll registers the sweep and summary tasks.
func (s *Scheduler) RegisterAll(sweepCron, summaryCron string) error {
	if _, err := s.Cron.AddFunc(sweepCron, s.sweepTask); err != nil {
		return fmt.Errorf("register sweep task: %w", err)
	}
	if _, err := s.Cron.AddFunc(summaryCron, s.summaryTask); err != nil {
		return fmt.Errorf("register summary task: %w", err)
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

// RunSweepNow executes the sweep task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunSweepNow() {
	s.sweepTask()
}

// sweepTask retries execution of quorum-met requests that were blocked on
// funds. Notifies the ops chat only when something actually executed.
func (s *Scheduler) sweepTask() {
	executed := s.Engine.SweepFunded()
	if len(executed) == 0 {
		return
	}
	log.Printf("[INFO] sweep executed %d request(s)", len(executed))
	s.trySend(notifier.FormatSweepReport(executed, s.Engine.Status()))
}

func (s *Scheduler) summaryTask() {
	log.Println("[INFO] running daily summary")
	s.trySend(notifier.FormatDailySummary(s.Engine.Status(), s.Engine.PendingRequests()))
}

// HandleCommand processes an operator command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/vault":
		return notifier.FormatVaultStatus(s.Engine.Status())
	case "/pending":
		return notifier.FormatPendingList(s.Engine.PendingRequests(), s.Engine.Status().Required)
	case "/sweep":
		s.sweepTask()
		return "Sweep triggered"
	default:
		return "Commands:\n• /vault — balance and quorum\n• /pending — pending requests\n• /sweep — retry blocked requests"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
