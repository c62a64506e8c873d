package services

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// SessionConfig holds the renewal cadence of the session service
type SessionConfig struct {
	// RenewInterval is how often a live session is extended against the
	// backend.
	RenewInterval time.Duration
	// RetryInterval is the short reschedule used when a renewal fails for
	// a reason other than unauthorized.
	RetryInterval time.Duration
	// CallTimeout bounds every backend round-trip so a hung call cannot
	// hold the probe guard.
	CallTimeout time.Duration
}

const (
	defaultRenewInterval = 15 * time.Minute
	defaultRetryInterval = 60 * time.Second
	defaultCallTimeout   = 10 * time.Second
)

// SessionServiceImpl implements domain.SessionController. It owns the session
// state (single writer), the probe guard and the renewal timer. All state
// mutations happen under one mutex with no suspension point mid-update, so a
// reader can never observe IsAuthenticated disagreeing with Identity.
type SessionServiceImpl struct {
	api       domain.MembershipAPI
	stateRepo domain.ClientStateRepository
	notifier  domain.Notifier
	cfg       SessionConfig

	// probeInFlight serializes "am I logged in" probes. Overlapping
	// triggers return immediately instead of racing the store.
	probeInFlight atomic.Bool

	mu         sync.Mutex
	state      domain.SessionState
	renewTimer *time.Timer
}

// NewSessionService creates a session service in the initial loading state
func NewSessionService(
	api domain.MembershipAPI,
	stateRepo domain.ClientStateRepository,
	notifier domain.Notifier,
	cfg SessionConfig,
) *SessionServiceImpl {
	if cfg.RenewInterval <= 0 {
		cfg.RenewInterval = defaultRenewInterval
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	return &SessionServiceImpl{
		api:       api,
		stateRepo: stateRepo,
		notifier:  notifier,
		cfg:       cfg,
		state:     domain.SessionState{IsLoading: true},
	}
}

// Snapshot implements domain.SessionReader
func (s *SessionServiceImpl) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Bootstrap implements domain.SessionController
func (s *SessionServiceImpl) Bootstrap(ctx context.Context) {
	s.runProbe(ctx)
}

// ValidateSession implements domain.SessionController. When a probe is
// already in flight it answers from the current snapshot without issuing a
// duplicate backend call.
func (s *SessionServiceImpl) ValidateSession(ctx context.Context) bool {
	s.runProbe(ctx)
	return s.Snapshot().IsAuthenticated
}

// HandleSessionExpired implements domain.SessionController
func (s *SessionServiceImpl) HandleSessionExpired() {
	s.markExpired()
}

// runProbe issues at most one identity probe. The guard flag clears on every
// exit path, so a failed or hung call can never wedge future probes. Returns
// false when a probe was already in flight.
func (s *SessionServiceImpl) runProbe(ctx context.Context) bool {
	if !s.probeInFlight.CompareAndSwap(false, true) {
		return false
	}
	defer s.probeInFlight.Store(false)

	s.beginProbe()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	token, remembered, err := s.stateRepo.RememberedSession(ctx)
	if err != nil {
		log.Printf("CLIENT_STATE_READ_FAILED: err=%v", err)
	} else if token != "" {
		s.api.SetToken(token)
	}

	identity, probeErr := s.api.Probe(ctx)
	if probeErr != nil {
		s.failProbe(probeErr, remembered)
		return true
	}
	s.completeProbe(identity)
	return true
}

func (s *SessionServiceImpl) beginProbe() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.mu.Unlock()
}

// completeProbe publishes the probed identity and starts the renewal cycle.
func (s *SessionServiceImpl) completeProbe(identity *domain.Identity) {
	s.mu.Lock()
	s.state = domain.SessionState{
		Identity:        identity,
		IsAuthenticated: true,
		IsLoading:       false,
	}
	s.scheduleRenewalLocked(s.cfg.RenewInterval)
	s.mu.Unlock()
}

// failProbe resolves a failed probe. Unauthorized against a remembered
// session means the session died while we were away; anything else is the
// ordinary not-logged-in path and stays silent.
func (s *SessionServiceImpl) failProbe(err error, remembered bool) {
	if domain.IsUnauthorized(err) {
		if remembered {
			s.markExpired()
			s.forgetRememberedSession()
			return
		}
	} else {
		log.Printf("SESSION_PROBE_FAILED: kind=%s err=%v", domain.Classify(err), err)
	}

	s.mu.Lock()
	s.state.Identity = nil
	s.state.IsAuthenticated = false
	s.state.IsLoading = false
	s.mu.Unlock()
}

// Login implements domain.SessionController
func (s *SessionServiceImpl) Login(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	result, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	s.setAuthenticated(result.Identity)
	s.persistMarkers(creds, result.AccessToken)
	return result.Identity, nil
}

// MerchantLogin implements domain.SessionController
func (s *SessionServiceImpl) MerchantLogin(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	result, err := s.api.MerchantLogin(ctx, creds)
	if err != nil {
		return nil, err
	}
	s.setAuthenticated(result.Identity)
	s.persistMarkers(creds, result.AccessToken)
	return result.Identity, nil
}

// Register implements domain.SessionController
func (s *SessionServiceImpl) Register(ctx context.Context, reg domain.Registration) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	result, err := s.api.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	s.setAuthenticated(result.Identity)
	return result.Identity, nil
}

// MerchantRegister implements domain.SessionController
func (s *SessionServiceImpl) MerchantRegister(ctx context.Context, reg domain.MerchantRegistration) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	result, err := s.api.MerchantRegister(ctx, reg)
	if err != nil {
		return nil, err
	}
	s.setAuthenticated(result.Identity)
	return result.Identity, nil
}

// Logout implements domain.SessionController. Local state clears before the
// backend round-trip so no renewal fires while the logout call is in flight,
// and the user is never stuck logged in behind a failed network call. The
// bearer token stays installed until the upstream call returns; the backend
// needs it to know which session to terminate.
func (s *SessionServiceImpl) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = domain.SessionState{}
	s.cancelRenewalLocked()
	s.mu.Unlock()

	s.notifier.Notify(domain.NewNotice(domain.NoticeLoggedOut, "You have been logged out."))

	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	err := s.api.Logout(ctx)

	s.api.SetToken("")
	s.forgetRememberedSession()

	if err != nil {
		log.Printf("LOGOUT_UPSTREAM_FAILED: err=%v", err)
		return err
	}
	return nil
}

// RememberedEmail implements domain.SessionController
func (s *SessionServiceImpl) RememberedEmail(ctx context.Context) string {
	email, err := s.stateRepo.RememberedEmail(ctx)
	if err != nil {
		log.Printf("CLIENT_STATE_READ_FAILED: err=%v", err)
		return ""
	}
	return email
}

// Close implements domain.SessionController
func (s *SessionServiceImpl) Close() {
	s.mu.Lock()
	s.cancelRenewalLocked()
	s.mu.Unlock()
}

// setAuthenticated unconditionally replaces the identity and (re)starts the
// renewal cycle.
func (s *SessionServiceImpl) setAuthenticated(identity *domain.Identity) {
	s.mu.Lock()
	s.state = domain.SessionState{
		Identity:        identity,
		IsAuthenticated: true,
		IsLoading:       false,
	}
	s.scheduleRenewalLocked(s.cfg.RenewInterval)
	s.mu.Unlock()
}

// markExpired clears the identity atomically with setting the expired flag
// and emits the expiry notice exactly once per expiry transition.
func (s *SessionServiceImpl) markExpired() {
	s.mu.Lock()
	alreadyExpired := s.state.SessionExpired && !s.state.IsAuthenticated
	s.state = domain.SessionState{SessionExpired: true}
	s.cancelRenewalLocked()
	s.mu.Unlock()

	s.api.SetToken("")

	if alreadyExpired {
		return
	}
	log.Printf("SESSION_EXPIRED: timestamp=%s", time.Now().UTC().Format(time.RFC3339))
	s.notifier.Notify(domain.NewNotice(domain.NoticeSessionExpired, "Your session has expired. Please sign in again."))
}

// persistMarkers records or clears the remember markers after a login.
// Marker writes are best-effort; a storage failure never blocks the login.
func (s *SessionServiceImpl) persistMarkers(creds domain.Credentials, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.CallTimeout)
	defer cancel()

	if !creds.Remember {
		if err := s.stateRepo.ClearRememberedEmail(ctx); err != nil {
			log.Printf("CLIENT_STATE_WRITE_FAILED: marker=email err=%v", err)
		}
		s.forgetRememberedSession()
		return
	}

	if err := s.stateRepo.SaveRememberedEmail(ctx, creds.Email); err != nil {
		log.Printf("CLIENT_STATE_WRITE_FAILED: marker=email err=%v", err)
	}
	if err := s.stateRepo.SaveRememberedSession(ctx, token); err != nil {
		log.Printf("CLIENT_STATE_WRITE_FAILED: marker=session err=%v", err)
	}
}

func (s *SessionServiceImpl) forgetRememberedSession() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.CallTimeout)
	defer cancel()
	if err := s.stateRepo.ClearRememberedSession(ctx); err != nil {
		log.Printf("CLIENT_STATE_WRITE_FAILED: marker=session err=%v", err)
	}
}

// scheduleRenewalLocked arms the single renewal timer, cancelling any prior
// handle first. Callers must hold s.mu.
func (s *SessionServiceImpl) scheduleRenewalLocked(d time.Duration) {
	s.cancelRenewalLocked()
	s.renewTimer = time.AfterFunc(d, s.renew)
}

// cancelRenewalLocked stops the active timer, if any. Callers must hold s.mu.
func (s *SessionServiceImpl) cancelRenewalLocked() {
	if s.renewTimer != nil {
		s.renewTimer.Stop()
		s.renewTimer = nil
	}
}

// renew is the timer callback keeping the backend session alive. Success
// reschedules at the renew interval; unauthorized is terminal for this cycle;
// any other failure retries on the short interval instead of evicting a
// session over a network blip.
func (s *SessionServiceImpl) renew() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.CallTimeout)
	defer cancel()

	err := s.api.ExtendSession(ctx)
	switch {
	case err == nil:
		s.rescheduleIfAuthenticated(s.cfg.RenewInterval)
	case domain.IsUnauthorized(err):
		// A logout while this call was in flight already ended the
		// session deliberately; the 401 is not an expiry then.
		if !s.Snapshot().IsAuthenticated {
			return
		}
		log.Printf("SESSION_RENEW_REJECTED: err=%v", err)
		s.markExpired()
	default:
		log.Printf("SESSION_RENEW_RETRY: kind=%s retry_in=%s err=%v", domain.Classify(err), s.cfg.RetryInterval, err)
		s.rescheduleIfAuthenticated(s.cfg.RetryInterval)
	}
}

// rescheduleIfAuthenticated arms the next renewal unless the session ended
// while the renewal call was in flight.
func (s *SessionServiceImpl) rescheduleIfAuthenticated(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsAuthenticated {
		s.scheduleRenewalLocked(d)
	}
}

// Compile-time interface compliance verification
var _ domain.SessionController = (*SessionServiceImpl)(nil)
