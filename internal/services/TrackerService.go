package services

import (
	"context"
	"errors"
	"hourbot/internal/models"
	"hourbot/internal/providers"
	"hourbot/internal/statistic"
	"hourbot/internal/storage"
	"hourbot/internal/storage/interfaces"
	"hourbot/internal/structures"
	"time"
)

type TrackerServiceInterface interface {
	// Handle runs one chat message for identity and returns the reply text.
	// It never fails: store and input errors become user-facing replies.
	Handle(ctx context.Context, identity, text string) string
}

type TrackerService struct {
	store       interfaces.StoreInterface
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	loc         *time.Location
	now         func() time.Time
	maxHours    float64
	historySize int
	dailyDays   int
	sheetURL    string
}

func NewTrackerService(conf *structures.Config, store interfaces.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface, loc *time.Location) TrackerServiceInterface {
	sheetURL := ""
	if storage.ResolveDriver(conf) == "sheets" {
		sheetURL = storage.SheetURL(conf.Sheets.SpreadsheetID)
	}
	return &TrackerService{
		store:       store,
		logger:      logger,
		metrics:     metrics,
		loc:         loc,
		now:         time.Now,
		maxHours:    conf.Tracker.MaxHours,
		historySize: conf.Tracker.HistorySize,
		dailyDays:   conf.Tracker.DailyDays,
		sheetURL:    sheetURL,
	}
}

func (ts *TrackerService) Handle(ctx context.Context, identity, text string) (reply string) {
	cmd := ParseCommand(text, ts.maxHours)
	ts.metrics.IncCommandsTotal(string(cmd.Kind))
	ts.logger.Debugf(providers.TypePost, "Command %s from %s", cmd.Kind, identity)

	defer func() {
		if r := recover(); r != nil {
			ts.logger.Errorf(providers.TypePost, "Command %s from %s panicked: %v", cmd.Kind, identity, r)
			reply = replyFailure
		}
	}()

	switch cmd.Kind {
	case CommandLog:
		return ts.logHours(ctx, identity, cmd)
	case CommandToday:
		return ts.withEntries(ctx, identity, func(entries []models.Entry, now time.Time) string {
			return formatToday(statistic.TodayTotal(entries, now))
		})
	case CommandWeek:
		return ts.withEntries(ctx, identity, func(entries []models.Entry, now time.Time) string {
			return formatWeek(statistic.WeekTotal(entries, now))
		})
	case CommandTotal:
		return ts.withEntries(ctx, identity, func(entries []models.Entry, _ time.Time) string {
			return formatTotal(statistic.AllTimeTotal(entries))
		})
	case CommandStats:
		return ts.withEntries(ctx, identity, func(entries []models.Entry, now time.Time) string {
			return formatStats(statistic.Summarize(entries, now))
		})
	case CommandDaily:
		return ts.withEntries(ctx, identity, func(entries []models.Entry, now time.Time) string {
			return formatDaily(statistic.DailyBreakdown(entries, now, ts.dailyDays))
		})
	case CommandHistory:
		return ts.withEntries(ctx, identity, func(entries []models.Entry, _ time.Time) string {
			return formatHistory(models.Recent(entries, ts.historySize), statistic.AllTimeTotal(entries))
		})
	case CommandReset:
		return ts.reset(ctx, identity)
	case CommandSheet:
		return formatSheet(ts.sheetURL)
	default:
		return helpText
	}
}

func (ts *TrackerService) clock() time.Time {
	return ts.now().In(ts.loc)
}

// entries loads what the aggregates may see: everything after the latest reset.
func (ts *TrackerService) entries(ctx context.Context, identity string) ([]models.Entry, error) {
	all, err := ts.store.AllEntries(ctx, identity)
	if err != nil {
		return nil, err
	}
	return models.SinceReset(all), nil
}

func (ts *TrackerService) withEntries(ctx context.Context, identity string, render func([]models.Entry, time.Time) string) string {
	entries, err := ts.entries(ctx, identity)
	if err != nil {
		ts.logStoreError("read entries", identity, err)
		return replyUnavailable
	}
	return render(entries, ts.clock())
}

func (ts *TrackerService) logHours(ctx context.Context, identity string, cmd Command) string {
	if cmd.Err != nil {
		ts.logger.Debugf(providers.TypePost, "Rejected log from %s: %s", identity, cmd.Err)
		if errors.Is(cmd.Err, errHoursOutOfRange) {
			return formatOutOfRange(ts.maxHours)
		}
		return replyInvalidFormat
	}

	now := ts.clock()
	if err := ts.store.Append(ctx, identity, cmd.Hours, now); err != nil {
		ts.logStoreError("append", identity, err)
		return replyLogFailed
	}

	entries, err := ts.entries(ctx, identity)
	if err != nil {
		ts.logStoreError("read entries", identity, err)
		return formatLoggedWithoutSummary(cmd.Hours)
	}
	return formatLogged(cmd.Hours, statistic.Summarize(entries, now))
}

func (ts *TrackerService) reset(ctx context.Context, identity string) string {
	if err := ts.store.Reset(ctx, identity, ts.clock()); err != nil {
		ts.logStoreError("reset", identity, err)
		return replyResetFailed
	}
	return replyReset
}

func (ts *TrackerService) logStoreError(op, identity string, err error) {
	if errors.Is(err, storage.ErrStoreUnavailable) {
		ts.logger.Errorf(providers.TypeApp, "Store %s unavailable on %s for %s: %s", ts.store.Name(), op, identity, err)
		return
	}
	ts.logger.Errorf(providers.TypeApp, "Unexpected store error on %s for %s: %s", op, identity, err)
}
