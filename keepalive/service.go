// Package keepalive watches the engine's backing services (postgres, redis)
// and raises an alert when one of them stops responding, so an outage shows
// up before players notice broken trivia commands.
package keepalive

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charlesmadere/CynanBot-sub014/logging"
	"golang.org/x/sync/errgroup"
)

// CheckFunc probes one backing service. A nil error means healthy.
type CheckFunc func(ctx context.Context) error

// ServiceConfig names a service and how to probe it.
type ServiceConfig struct {
	Name  string
	Check CheckFunc
}

// ServiceState tracks the state of a monitored service
type ServiceState struct {
	Name                string
	LastCheckTime       time.Time
	LastAlertTime       time.Time
	ConsecutiveFailures int
	IsHealthy           bool
	check               CheckFunc
	mu                  sync.RWMutex
}

// Alerter defines the interface for sending alerts
type Alerter interface {
	SendAlert(ctx context.Context, serviceName string, message string) error
}

// AlertFunc adapts a plain function into an Alerter.
type AlertFunc func(ctx context.Context, serviceName string, message string) error

func (f AlertFunc) SendAlert(ctx context.Context, serviceName string, message string) error {
	return f(ctx, serviceName, message)
}

const alertAfterFailures = 3

// KeepAliveService monitors multiple services and alerts on failures
type KeepAliveService struct {
	services      map[string]*ServiceState
	checkInterval time.Duration
	alertInterval time.Duration
	checkTimeout  time.Duration
	alerter       Alerter
	logger        *logging.Logger
	mu            sync.RWMutex
}

// NewKeepAliveService creates a new keepalive service. A nil alerter means
// failures only go to the log.
func NewKeepAliveService(
	services []ServiceConfig,
	checkInterval time.Duration,
	alertInterval time.Duration,
	alerter Alerter,
	logger *logging.Logger,
) *KeepAliveService {
	if logger == nil {
		logger = logging.Default()
	}

	kas := &KeepAliveService{
		services:      make(map[string]*ServiceState),
		checkInterval: checkInterval,
		alertInterval: alertInterval,
		checkTimeout:  10 * time.Second,
		alerter:       alerter,
		logger:        logger,
	}

	for _, svc := range services {
		kas.services[svc.Name] = &ServiceState{
			Name:      svc.Name,
			IsHealthy: true,
			check:     svc.Check,
		}
	}

	return kas
}

// Start begins the monitoring loop.
func (kas *KeepAliveService) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		ticker := time.NewTicker(kas.checkInterval)
		defer ticker.Stop()

		// Do an initial check immediately
		kas.checkAllServices(ctx)

		for {
			select {
			case <-ctx.Done():
				kas.logger.Info("keepalive service shutting down")
				return
			case <-ticker.C:
				kas.checkAllServices(ctx)
			}
		}
	}()
}

// checkAllServices checks all monitored services in parallel
func (kas *KeepAliveService) checkAllServices(ctx context.Context) {
	kas.mu.RLock()
	services := make([]*ServiceState, 0, len(kas.services))
	for _, svc := range kas.services {
		services = append(services, svc)
	}
	kas.mu.RUnlock()

	var eg errgroup.Group
	for _, svc := range services {
		svc := svc
		eg.Go(func() error {
			kas.checkService(ctx, svc)
			return nil
		})
	}
	_ = eg.Wait()
}

// checkService probes a single service and handles alerting
func (kas *KeepAliveService) checkService(ctx context.Context, state *ServiceState) {
	state.mu.Lock()
	state.LastCheckTime = time.Now()
	state.mu.Unlock()

	checkCtx, cancel := context.WithTimeout(ctx, kas.checkTimeout)
	err := state.check(checkCtx)
	cancel()

	state.mu.Lock()
	defer state.mu.Unlock()

	if err == nil {
		if !state.IsHealthy {
			kas.logger.Info("service recovered",
				"service", state.Name,
				"after_failures", state.ConsecutiveFailures)
			kas.sendAlert(ctx, state.Name, fmt.Sprintf("Service %s has recovered after %d failed checks",
				state.Name, state.ConsecutiveFailures))
		}
		state.IsHealthy = true
		state.ConsecutiveFailures = 0
		return
	}

	state.ConsecutiveFailures++
	state.IsHealthy = false

	kas.logger.Warn("service health check failed",
		"service", state.Name,
		"error", err.Error(),
		"consecutive_failures", state.ConsecutiveFailures)

	if state.ConsecutiveFailures == alertAfterFailures {
		kas.sendAlert(ctx, state.Name, fmt.Sprintf("Service %s is offline after %d failed health checks",
			state.Name, alertAfterFailures))
		state.LastAlertTime = time.Now()
	} else if state.ConsecutiveFailures > alertAfterFailures {
		// repeat the alert at most once per alertInterval
		if time.Since(state.LastAlertTime) >= kas.alertInterval {
			kas.sendAlert(ctx, state.Name, fmt.Sprintf("Service %s is still offline (consecutive failures: %d)",
				state.Name, state.ConsecutiveFailures))
			state.LastAlertTime = time.Now()
		}
	}
}

func (kas *KeepAliveService) sendAlert(ctx context.Context, serviceName, message string) {
	if kas.alerter == nil {
		return
	}
	if err := kas.alerter.SendAlert(ctx, serviceName, message); err != nil {
		kas.logger.Error("failed to send alert", "error", err.Error(), "service", serviceName)
	}
}

// ServiceStateSnapshot is a snapshot of a service state without locks
type ServiceStateSnapshot struct {
	Name                string
	LastCheckTime       time.Time
	LastAlertTime       time.Time
	ConsecutiveFailures int
	IsHealthy           bool
}

// GetServiceStates returns the current state of all services
func (kas *KeepAliveService) GetServiceStates() map[string]ServiceStateSnapshot {
	kas.mu.RLock()
	defer kas.mu.RUnlock()

	states := make(map[string]ServiceStateSnapshot)
	for name, svc := range kas.services {
		svc.mu.RLock()
		states[name] = ServiceStateSnapshot{
			Name:                svc.Name,
			LastCheckTime:       svc.LastCheckTime,
			LastAlertTime:       svc.LastAlertTime,
			ConsecutiveFailures: svc.ConsecutiveFailures,
			IsHealthy:           svc.IsHealthy,
		}
		svc.mu.RUnlock()
	}
	return states
}

// Healthy reports whether every monitored service passed its last check.
func (kas *KeepAliveService) Healthy() bool {
	for _, state := range kas.GetServiceStates() {
		if !state.IsHealthy {
			return false
		}
	}
	return true
}
