package route

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/dreasss/kiosk-enterprise-navigator/internal/catalog"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/display"

	qrcode "github.com/skip2/go-qrcode"
)

var (
	ErrMissingEndpoint = errors.New("route: origin and destination required")
	ErrSuperseded      = errors.New("route: superseded by a newer request")
)

const qrSizePx = 200

// Service builds pedestrian routes from the kiosk to a selected object and
// hands them off to the visitor's phone as a scannable code.
type Service struct {
	provider Provider
	store    *catalog.Store
	renderer display.Renderer
	notifier display.Notifier

	origin   Endpoint
	mapsBase string
	timeout  time.Duration

	mu        sync.Mutex
	seq       uint64
	current   *Result
	onBuilt   func(Result)
	onCleared func()
}

func NewService(provider Provider, store *catalog.Store, renderer display.Renderer, notifier display.Notifier, origin Endpoint, mapsBase string, timeout time.Duration) *Service {
	return &Service{
		provider: provider,
		store:    store,
		renderer: renderer,
		notifier: notifier,
		origin:   origin,
		mapsBase: mapsBase,
		timeout:  timeout,
	}
}

// SetHooks installs the UI panel callbacks for built/cleared transitions.
func (s *Service) SetHooks(onBuilt func(Result), onCleared func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onBuilt = onBuilt
	s.onCleared = onCleared
}

// BuildRoute requests a pedestrian route from the kiosk to dest, draws it,
// and returns the handoff result. Concurrent builds are resolved by sequence
// number: only the latest request may publish its result, a stale provider
// response is discarded. Provider failures surface a notification and are not
// retried.
func (s *Service) BuildRoute(ctx context.Context, dest Endpoint) (Result, error) {
	if s.origin.Name == "" || dest.Name == "" {
		s.notifyError("Ошибка построения маршрута", "Выберите начальную и конечную точки")
		return Result{}, ErrMissingEndpoint
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	// Prior geometry comes off the map before the provider is consulted, even
	// if that request is still in flight.
	s.renderer.ClearRoute()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	leg, err := s.provider.PedestrianRoute(ctx, s.origin.Coords, dest.Coords)

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return Result{}, ErrSuperseded
	}
	if err != nil {
		s.mu.Unlock()
		log.Printf("route build failed: %v", err)
		s.notifyError("Ошибка построения маршрута", "Не удалось построить маршрут")
		return Result{}, err
	}

	deepLink := DeepLink(s.mapsBase, s.origin.Coords, dest.Coords)
	png, err := qrcode.Encode(deepLink, qrcode.Medium, qrSizePx)
	if err != nil {
		s.mu.Unlock()
		log.Printf("qr encode failed: %v", err)
		s.notifyError("Ошибка построения маршрута", "Не удалось создать код для телефона")
		return Result{}, err
	}

	result := Result{
		Seq:             seq,
		From:            s.origin,
		To:              dest,
		DistanceMeters:  leg.DistanceMeters,
		DurationSeconds: leg.DurationSeconds,
		DeepLink:        deepLink,
		QRPNG:           png,
	}
	if leg.DistanceMeters != nil {
		result.DistanceDisplay = FormatDistance(*leg.DistanceMeters)
	}
	if leg.DurationSeconds != nil {
		result.DurationDisplay = FormatDuration(*leg.DurationSeconds)
	}
	s.current = &result
	onBuilt := s.onBuilt
	s.mu.Unlock()

	s.renderer.DrawRoute(display.Route{From: s.origin.Coords, To: dest.Coords, Mode: "pedestrian"})
	s.appendHistory(dest)
	s.notifier.Notify("Маршрут построен", fmt.Sprintf("От %q до %q", s.origin.Name, dest.Name))

	if onBuilt != nil {
		onBuilt(result)
	}
	return result, nil
}

// ClearRoute removes the drawn geometry and discards the current result.
// Idempotent; history is append-only and survives clearing.
func (s *Service) ClearRoute() {
	s.mu.Lock()
	had := s.current != nil
	s.current = nil
	onCleared := s.onCleared
	s.mu.Unlock()

	s.renderer.ClearRoute()
	if had && onCleared != nil {
		onCleared()
	}
}

// Current returns the latest built result, if any.
func (s *Service) Current() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Result{}, false
	}
	return *s.current, true
}

// Recent returns the persisted history, newest first.
func (s *Service) Recent(ctx context.Context) []RecentRoute {
	var history []RecentRoute
	if err := s.store.GetJSON(ctx, catalog.RecentRoutesKey, &history); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		log.Printf("recent routes read error: %v", err)
		return nil
	}
	return history
}

// NotifyDownloaded reports that the visitor saved the handoff code.
func (s *Service) NotifyDownloaded() {
	s.notifier.Notify("Код сохранён", "QR-код маршрута загружен")
}

// appendHistory persists the build as a RecentRoute. Fire-and-forget:
// failures are logged, the route itself already succeeded.
func (s *Service) appendHistory(dest Endpoint) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var history []RecentRoute
	if err := s.store.GetJSON(ctx, catalog.RecentRoutesKey, &history); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		log.Printf("recent routes read error: %v", err)
		history = nil
	}

	entry := RecentRoute{
		From:       s.origin.Name,
		To:         dest.Name,
		FromCoords: s.origin.Coords,
		ToCoords:   dest.Coords,
		Timestamp:  time.Now(),
	}
	history = append([]RecentRoute{entry}, history...)
	if len(history) > historyLimit {
		history = history[:historyLimit]
	}

	if err := s.store.SetJSON(ctx, catalog.RecentRoutesKey, history); err != nil {
		log.Printf("recent routes write error: %v", err)
	}
}

func (s *Service) notifyError(title, message string) {
	if s.notifier != nil {
		s.notifier.NotifyError(title, message)
	}
}

// FormatDistance renders meters as kilometers with two decimals.
func FormatDistance(meters float64) string {
	return fmt.Sprintf("%.2f км", meters/1000)
}

// FormatDuration renders seconds as whole minutes, rounded to nearest.
func FormatDuration(seconds float64) string {
	return fmt.Sprintf("%d мин", int(math.Round(seconds/60)))
}
