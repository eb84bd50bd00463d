// Command territory renders tactical territory maps for planetside
// continents: region ownership, cutoff territory, capturable and
// stealable bases, and the lattice links between them.
//
// It can render a single map to a file or run as a small HTTP server
// that keeps the map current from the realtime event stream.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	_ "image/jpeg"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/census"
	"github.com/brhumphe/ps2-map-analyzer-sub000/event"
	"github.com/brhumphe/ps2-map-analyzer-sub000/event/wsc"
	"github.com/brhumphe/ps2-map-analyzer-sub000/lattice"
	"github.com/brhumphe/ps2-map-analyzer-sub000/render"
	"github.com/brhumphe/ps2-map-analyzer-sub000/style"
)

var config = struct {
	Bind         string
	ServiceID    string
	VerboseLog   bool
	World        ps2.WorldID
	Zone         ps2.ZoneID
	Viewer       ps2.FactionID
	FadeDistant  bool
	Output       string
	OutputFormat string
	ImageSize    int
	TerrainPath  string
}{
	ImageSize: 1024,
}

func main() {
	var world, zone, faction string
	flag.StringVar(&config.Bind, "serve", config.Bind, "Serve will start the process as a small HTTP server bound to the given network interface such as \"localhost:8080\".")
	flag.StringVar(&config.ServiceID, "s", config.ServiceID, "Service ID: https://census.daybreakgames.com/#service-id")
	flag.BoolVar(&config.VerboseLog, "v", config.VerboseLog, "Enable writing verbose logging information to stderr.")
	flag.StringVar(&world, "world", "emerald", "The world to check (emerald, soltech, etc.)")
	flag.StringVar(&zone, "zone", "indar", "The zone to check (indar, hossin, esamir, amerish, oshur)")
	flag.StringVar(&faction, "faction", "", "Highlight tactical relevance for this faction (vs, nc, tr).")
	flag.BoolVar(&config.FadeDistant, "fade", false, "Fade regions by their distance from the frontline.")
	flag.StringVar(&config.OutputFormat, "format", "png", "The output format for a map (png, svg).")
	flag.IntVar(&config.ImageSize, "size", config.ImageSize, "Pixel dimensions of rendered PNG maps.")
	flag.StringVar(&config.TerrainPath, "terrain", "", "Terrain image (png, jpeg, or webp) to draw under the map regions.")
	flag.Parse()

	config.Output = flag.Arg(0)
	config.World = parseWorld(world)
	config.Zone = parseZone(zone)
	config.Viewer = parseFaction(faction)

	var logLevel = slog.LevelInfo
	if config.VerboseLog {
		logLevel = slog.LevelDebug
	}
	baseLogger := slog.New(&contextHandler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}),
	})
	slog.SetDefault(baseLogger)

	if config.ServiceID != "" {
		census.DefaultClient.Key = config.ServiceID
	}
	if config.World == 0 {
		slog.Error("unknown world", "world", world)
		os.Exit(1)
	}
	if config.Zone == 0 {
		slog.Error("unknown zone", "zone", zone)
		os.Exit(1)
	}

	ctx, shutdown := context.WithCancelCause(context.Background())
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop
		shutdown(errGracefulShutdown)
	}()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			err = context.Cause(ctx)
		}
		if errors.Is(err, errGracefulShutdown) {
			return
		}
		slog.Error(err.Error())
		os.Exit(1)
	}
}

var errGracefulShutdown = errors.New("received shutdown signal")

func run(ctx context.Context) error {
	if config.Bind != "" {
		slog.Info("starting", "mode", "server", "bind", config.Bind, "world", config.World, "zone", config.Zone)
		return runServer(ctx)
	}
	slog.Info("starting", "mode", "render", "world", config.World, "zone", config.Zone, "format", config.OutputFormat)
	return runOnce(ctx)
}

func runOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	zone, snap, err := census.Load(ctx, census.DefaultClient, config.World, config.Zone)
	if err != nil {
		return fmt.Errorf("load map data: %w", err)
	}

	analysis := lattice.Analyze(zone, snap, lattice.Options{Viewer: config.Viewer})
	sheet, err := style.BuildSheet(analysis, preferences())
	if err != nil {
		return err
	}

	w, closer, err := output(config.Output)
	if err != nil {
		return err
	}
	defer closer()

	switch config.OutputFormat {
	case "svg":
		_, err = render.Svg(zone, sheet).WriteTo(w)
		return err
	case "png":
		img, err := newMapImage()
		if err != nil {
			return err
		}
		if err := render.Draw(img, zone, sheet); err != nil {
			return err
		}
		return png.Encode(w, img)
	default:
		return fmt.Errorf("invalid output format %q: valid options for -format are \"png\", \"svg\"", config.OutputFormat)
	}
}

func preferences() style.Preferences {
	return style.Preferences{
		Viewer:      config.Viewer,
		FadeDistant: config.FadeDistant,
		Fade:        style.DefaultFade,
	}
}

// newMapImage allocates the render target and draws the terrain
// underlay when one is configured.
func newMapImage() (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, config.ImageSize, config.ImageSize))
	if config.TerrainPath == "" {
		return img, nil
	}
	f, err := os.Open(config.TerrainPath)
	if err != nil {
		return nil, fmt.Errorf("open terrain: %w", err)
	}
	defer f.Close()
	terrain, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode terrain: %w", err)
	}
	render.DrawTerrain(img, terrain)
	return img, nil
}

func output(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// mapServer holds the live map state for server mode.
// Snapshot updates replace the analysis wholesale under the lock;
// request handlers only ever read.
type mapServer struct {
	zone *lattice.Zone

	mu       sync.RWMutex
	snapshot lattice.Snapshot
	analysis *lattice.Analysis
}

func (s *mapServer) update(snap lattice.Snapshot) {
	a := lattice.Analyze(s.zone, snap, lattice.Options{Viewer: config.Viewer})
	s.mu.Lock()
	s.snapshot = snap
	s.analysis = a
	s.mu.Unlock()
}

func (s *mapServer) current() (*lattice.Analysis, lattice.Snapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analysis, s.snapshot
}

func (s *mapServer) applyCapture(e event.FacilityControl) {
	if e.WorldID != config.World {
		return
	}
	_, snap := s.current()
	updated, ok := event.ApplyControl(s.zone, snap, e)
	if !ok {
		return
	}
	slog.Info("facility captured", "facility", e.FacilityID, "faction", e.NewFactionID)
	s.update(updated)
}

func runServer(ctx context.Context) error {
	ctx, shutdown := context.WithCancelCause(ctx)
	defer shutdown(nil)

	loadCtx, cancel := context.WithTimeout(ctx, time.Minute)
	zone, snap, err := census.Load(loadCtx, census.DefaultClient, config.World, config.Zone)
	cancel()
	if err != nil {
		return fmt.Errorf("setup failed: initial map state: %w", err)
	}
	srv := &mapServer{zone: zone}
	srv.update(snap)

	// the event stream keeps ownership current between polls;
	// a slow census poll still recovers from any missed events
	events := wsc.New(config.ServiceID, ps2.GetEnvironment(config.World))
	events.AddHandler(srv.applyCapture)
	events.SetConnectHandler(func() {
		sub := wsc.Subscribe{}
		sub.AddWorld(config.World)
		sub.MapEvents()
		events.Send(sub)
	})

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		wsc.WithRetry(ctx, events)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Minute):
				pollCtx, cancel := context.WithTimeout(ctx, time.Minute)
				snaps, err := census.GetSnapshot(pollCtx, census.DefaultClient, config.World, ps2.ZoneInstanceID(config.Zone))
				cancel()
				if err != nil || len(snaps) == 0 {
					slog.Info("failed to refresh map state", "error", err)
					continue
				}
				srv.update(snaps[0])
			}
		}
	}()

	router := http.NewServeMux()
	router.HandleFunc("GET /map.png", srv.handlePNG)
	router.HandleFunc("GET /map.svg", srv.handleSVG)

	var h http.Handler = router
	h = logRequest(h)
	h = injectCorrelationID(h)

	httpSrv := http.Server{
		Addr:    config.Bind,
		Handler: h,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("starting http service", "bind", config.Bind)
		defer slog.Info("stopped http service")
		shutdown(httpSrv.ListenAndServe())
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		wait := 5 * time.Second
		waitctx, cancel := context.WithTimeout(context.Background(), wait)
		defer cancel()
		if err := httpSrv.Shutdown(waitctx); err != nil {
			slog.Info("error while stopping http server", "error", err, "wait", wait)
		}
	}()
	wg.Wait()
	return context.Cause(ctx)
}

func (s *mapServer) handlePNG(w http.ResponseWriter, r *http.Request) {
	analysis, _ := s.current()
	sheet, err := style.BuildSheet(analysis, preferences())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	img, err := newMapImage()
	if err != nil {
		slog.ErrorContext(r.Context(), "render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	if err := render.Draw(img, s.zone, sheet); err != nil {
		slog.ErrorContext(r.Context(), "render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=60")
	png.Encode(w, img)
}

func (s *mapServer) handleSVG(w http.ResponseWriter, r *http.Request) {
	analysis, _ := s.current()
	sheet, err := style.BuildSheet(analysis, preferences())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=60")
	if _, err := render.Svg(s.zone, sheet).WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "render failed", "error", err)
	}
}

type contextHandler struct {
	slog.Handler
}

var correlationID = contextKey("correlation_id")

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if uuid, ok := ctx.Value(correlationID).(uuid.UUID); ok {
		r.AddAttrs(slog.String(string(correlationID), uuid.String()))
	}
	return h.Handler.Handle(ctx, r)
}

type contextKey string

func injectCorrelationID(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = context.WithValue(ctx, correlationID, uuid.New())
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func logRequest(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.InfoContext(r.Context(), "incoming http request",
			"request", fmt.Sprintf("%s %s %s", r.Method, r.RequestURI, r.Proto),
		)
		next.ServeHTTP(w, r)
	}
}

func parseWorld(s string) ps2.WorldID {
	switch strings.ToLower(s) {
	case "connery":
		return ps2.Connery
	case "miller":
		return ps2.Miller
	case "cobalt":
		return ps2.Cobalt
	case "emerald":
		return ps2.Emerald
	case "jaeger":
		return ps2.Jaeger
	case "soltech":
		return ps2.SolTech
	case "genudine":
		return ps2.Genudine
	case "ceres":
		return ps2.Ceres
	default:
		return 0
	}
}

func parseZone(s string) ps2.ZoneID {
	switch strings.ToLower(s) {
	case "indar":
		return ps2.Indar
	case "hossin":
		return ps2.Hossin
	case "amerish":
		return ps2.Amerish
	case "esamir":
		return ps2.Esamir
	case "oshur":
		return ps2.Oshur
	default:
		return 0
	}
}

func parseFaction(s string) ps2.FactionID {
	switch strings.ToLower(s) {
	case "vs":
		return ps2.VS
	case "nc":
		return ps2.NC
	case "tr":
		return ps2.TR
	case "nso":
		return ps2.NSO
	default:
		return ps2.None
	}
}
