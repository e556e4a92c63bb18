package service

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// JobStatus reflects the last observed state of a named job.
type JobStatus string

const (
	JobStatusNone      JobStatus = "none"
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// SchedulerService wraps cron-based named jobs. Registration is idempotent:
// scheduling a name that already exists keeps the existing schedule instead
// of creating a competing one. Failing jobs are retried with exponential
// backoff rather than dropped.
type SchedulerService struct {
	cron *cron.Cron
	loc  *time.Location

	mu   sync.Mutex
	jobs map[string]*jobState

	// retry knobs, overridable in tests
	maxRetries   int
	retryBackoff time.Duration
}

type jobState struct {
	entryID cron.EntryID
	status  JobStatus
	lastRun time.Time
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron:         cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		loc:          loc,
		jobs:         make(map[string]*jobState),
		maxRetries:   5,
		retryBackoff: 30 * time.Second,
	}
}

// ScheduleDaily registers a named daily job at the given HH:MM time string.
// If the name is already scheduled, the existing schedule is kept.
func (s *SchedulerService) ScheduleDaily(name, timeStr string, job func() error) error {
	spec, err := buildDailySpec(timeStr)
	if err != nil {
		return err
	}
	return s.schedule(name, spec, job)
}

// ScheduleInterval registers a named periodic job every given duration,
// keeping an existing schedule for the same name.
func (s *SchedulerService) ScheduleInterval(name string, interval time.Duration, job func() error) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	return s.schedule(name, fmt.Sprintf("@every %ds", seconds), job)
}

func (s *SchedulerService) schedule(name, spec string, job func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		// keep-existing policy
		return nil
	}

	state := &jobState{status: JobStatusPending}
	entryID, err := s.cron.AddFunc(spec, func() {
		s.runWithRetry(name, job)
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	state.entryID = entryID
	s.jobs[name] = state
	return nil
}

// runWithRetry executes a job, retrying transient failures with doubling
// backoff. Failures are logged and reflected in Status, never surfaced as a
// panic of the host process.
func (s *SchedulerService) runWithRetry(name string, job func() error) {
	s.setStatus(name, JobStatusRunning)

	backoff := s.retryBackoff
	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}
		if err = job(); err == nil {
			s.setStatus(name, JobStatusSucceeded)
			return
		}
		log.Printf("job %s attempt %d: %v", name, attempt+1, err)
	}

	log.Printf("job %s giving up after %d attempts: %v", name, s.maxRetries+1, err)
	s.setStatus(name, JobStatusFailed)
}

func (s *SchedulerService) setStatus(name string, status JobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.jobs[name]; ok {
		state.status = status
		if status == JobStatusRunning {
			state.lastRun = time.Now()
		}
	}
}

// Status reports the last observed state of a named job; JobStatusNone when
// the name was never scheduled.
func (s *SchedulerService) Status(name string) JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.jobs[name]; ok {
		return state.status
	}
	return JobStatusNone
}

// Cancel removes a named job before its next firing.
func (s *SchedulerService) Cancel(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.jobs[name]; ok {
		s.cron.Remove(state.entryID)
		delete(s.jobs, name)
	}
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// NextDailyTrigger returns the next absolute instant the daily HH:MM target
// occurs in loc. If now's local time-of-day is at or past the target, the
// trigger is tomorrow; otherwise it is today. The default rollover target of
// 00:05 keeps a few minutes of slack after midnight so the host clock and
// zone state settle before the rollover reads "today".
func NextDailyTrigger(now time.Time, loc *time.Location, timeStr string) (time.Time, error) {
	hour, minute, err := parseClock(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	local := now.In(loc)
	target := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !local.Before(target) {
		target = target.AddDate(0, 0, 1)
	}
	return target, nil
}

func buildDailySpec(timeStr string) (string, error) {
	hour, minute, err := parseClock(timeStr)
	if err != nil {
		return "", err
	}
	// cron format: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}

func parseClock(timeStr string) (hour, minute int, err error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", timeStr)
	}
	return hour, minute, nil
}
