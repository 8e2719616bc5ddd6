package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"
	"github.com/rs/zerolog"

	chartoutadapter "hrmon/internal/modules/chart/adapter/out"
	chartdto "hrmon/internal/modules/chart/dto"
	chartservice "hrmon/internal/modules/chart/service"
	guideinadapter "hrmon/internal/modules/guide/adapter/in"
	guideoutadapter "hrmon/internal/modules/guide/adapter/out"
	guideusecase "hrmon/internal/modules/guide/usecase"
	monitorinadapter "hrmon/internal/modules/monitor/adapter/in"
	monitoroutadapter "hrmon/internal/modules/monitor/adapter/out"
	monitordto "hrmon/internal/modules/monitor/dto"
	monitorout "hrmon/internal/modules/monitor/port/out"
	monitorservice "hrmon/internal/modules/monitor/service"
	monitorusecase "hrmon/internal/modules/monitor/usecase"
	"hrmon/internal/platform/clock"
	"hrmon/internal/platform/config"
	"hrmon/internal/platform/id"
	"hrmon/internal/platform/logging"
	uiapp "hrmon/internal/ui/app"
	"hrmon/internal/web"
)

const simulatedInterval = time.Second

type App struct {
	Config     config.Config
	Logger     zerolog.Logger
	MonitorCLI monitorinadapter.CLIHandler
	MonitorTUI monitorinadapter.TUIHandler
	GuideCLI   guideinadapter.CLIHandler

	closer io.Closer
}

// New wires every module from cfg. console selects whether logs are also
// written to stderr; the terminal UI turns it off.
func New(cfg config.Config, console bool) (*App, error) {
	logger, closer, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	var central monitorout.Central
	if cfg.Simulate {
		central = monitoroutadapter.NewSimulatedCentral(simulatedInterval, logger.With().Str("component", "simulator").Logger())
	} else {
		central = monitoroutadapter.NewBLECentral(logger.With().Str("component", "ble").Logger())
	}
	pipeline := monitorservice.NewPipeline(central, logger.With().Str("component", "pipeline").Logger())
	monitorUC := monitorusecase.NewInteractor(
		pipeline,
		clock.SystemClock{},
		id.UUID{},
		cfg.MaxSamples,
		logger.With().Str("component", "monitor").Logger(),
	)

	guideUC := guideusecase.NewInteractor(guideoutadapter.NewYAMLPageStore(cfg.Guide.PagesFile))

	return &App{
		Config:     cfg,
		Logger:     logger,
		MonitorCLI: monitorinadapter.NewCLIHandler(monitorUC),
		MonitorTUI: monitorinadapter.NewTUIHandler(monitorUC, monitordto.StartInput{
			Address: cfg.Scan.Address,
			Name:    cfg.Scan.Name,
			Timeout: cfg.Scan.Timeout,
		}),
		GuideCLI: guideinadapter.NewCLIHandler(guideUC),
		closer:   closer,
	}, nil
}

func (a *App) Close() error {
	return a.closer.Close()
}

func RunTUI(ctx context.Context, app *App) error {
	pages, err := app.GuideCLI.Pages(ctx)
	if err != nil {
		return fmt.Errorf("load guide: %w", err)
	}
	renderer := chartservice.NewRenderer(
		chartoutadapter.NewTerminalChart(),
		app.Logger.With().Str("component", "chart").Logger(),
	)
	model := uiapp.NewModel(ctx, app.MonitorTUI, renderer, pages, uiapp.Options{
		Onboarding: app.Config.Onboarding,
		MaxSamples: app.Config.MaxSamples,
	}, app.Logger.With().Str("component", "tui").Logger())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// Serve runs the browser page until ctx is cancelled.
func Serve(ctx context.Context, app *App) error {
	pages, err := app.GuideCLI.Pages(ctx)
	if err != nil {
		return fmt.Errorf("load guide: %w", err)
	}
	renderer := chartservice.NewRenderer(
		chartoutadapter.NewEChartsChart(app.Config.Chart.Theme),
		app.Logger.With().Str("component", "chart").Logger(),
	)
	srv, err := web.New(ctx, app.MonitorTUI, renderer, pages, web.Options{
		Addr:       app.Config.Web.Addr,
		Refresh:    app.Config.Web.Refresh,
		ChartSize:  chartdto.Size{Width: app.Config.Chart.Width, Height: app.Config.Chart.Height},
		Onboarding: app.Config.Onboarding,
		MaxSamples: app.Config.MaxSamples,
	}, app.Logger.With().Str("component", "web").Logger())
	if err != nil {
		return fmt.Errorf("init web: %w", err)
	}

	if app.Config.Web.OpenBrowser {
		url := "http://" + app.Config.Web.Addr
		go func() {
			if err := browser.OpenURL(url); err != nil {
				app.Logger.Warn().Err(err).Str("url", url).Msg("open browser")
			}
		}()
	}
	return srv.Run(ctx)
}
