package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KNICEX/pairwatch/internal/config"
	"github.com/KNICEX/pairwatch/internal/entity"
	"github.com/KNICEX/pairwatch/internal/repo"
	"github.com/KNICEX/pairwatch/internal/schedule"
	"github.com/KNICEX/pairwatch/internal/service/exchange"
	"github.com/KNICEX/pairwatch/internal/service/exchange/binance"
	"github.com/KNICEX/pairwatch/internal/service/instrument"
	"github.com/KNICEX/pairwatch/internal/service/monitor"
	"github.com/KNICEX/pairwatch/internal/service/trade"
	"github.com/KNICEX/pairwatch/ioc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// --favorite=BTCUSDT:bitcoin --ignore=LUNAUSDT, 写入数据库观察列表后继续启动
	favorites = pflag.StringSlice("favorite", nil, "add symbols (SYMBOL or SYMBOL:id) to the db watchlist")
	ignores   = pflag.StringSlice("ignore", nil, "mark symbols as ignored in the db watchlist")
)

func initConfig() config.Config {
	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.yaml", "specify config file")
	pflag.Parse()

	cfg, err := config.Load(viper.GetViper(), *file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal error config file: %s\n", err)
		os.Exit(1)
	}
	if err = cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

func main() {
	cfg := initConfig()
	logger := ioc.InitLogger(cfg)
	logger.Info("config loaded", "config", fmt.Sprintf("%+v", cfg.Redacted()))

	bian := ioc.InitBinanceCli(cfg)
	exchangeSvc := binance.NewService(bian)
	notifier := ioc.InitNotifier(cfg, logger)

	steps := exchange.NewFallbackStepProvider(exchangeSvc, exchange.NewStaticStepProvider(cfg.Trade.DefaultPrecision, nil))
	executor := trade.NewExecutor(exchangeSvc, steps, notifier, trade.WithLogger(logger))
	monitorOpts := []monitor.Option{
		monitor.WithExecutor(executor, monitor.TradePolicy{
			Notional: cfg.Trade.NotionalAmount(),
			AutoBuy:  cfg.Trade.AutoBuy,
			AutoSell: cfg.Trade.AutoSell,
		}),
		monitor.WithWindow(cfg.Monitor.Window),
		monitor.WithWorkers(cfg.Monitor.Workers),
		monitor.WithLogger(logger),
	}

	var (
		symbolRepo repo.SymbolRepo
		taskOpts   []monitor.TaskOption
	)
	if !cfg.DB.Enabled && len(*favorites)+len(*ignores) > 0 {
		logger.Warn("db disabled, --favorite/--ignore ignored")
	}
	if db := ioc.InitDB(cfg); db != nil {
		symbolRepo = repo.NewSymbolRepo(db)
		applyMarks(symbolRepo, logger)
		monitorOpts = append(monitorOpts, monitor.WithJournal(
			monitor.NewRepoJournal(repo.NewSignalRepo(db), repo.NewTradeRepo(db)),
		))
		taskOpts = append(taskOpts, monitor.WithIgnored(func(ctx context.Context) (map[string]struct{}, error) {
			return instrument.Ignored(ctx, symbolRepo)
		}))
	}

	m := monitor.NewMonitor(ioc.InitMarketClient(cfg, bian), ioc.InitEvaluator(cfg), notifier, monitorOpts...)
	task := monitor.NewScanTask(m, ioc.InitInstrumentSource(cfg, symbolRepo), taskOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewScheduler(cfg.Monitor.Interval,
		schedule.WithRunOnStart(cfg.Monitor.ScanOnStart),
		schedule.WithLogger(logger),
	)
	logger.Info("monitor started", "interval", cfg.Monitor.Interval, "provider", cfg.Market.Provider)
	if err := scheduler.Run(ctx, task); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("monitor stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("monitor stopped")
}

func applyMarks(symbolRepo repo.SymbolRepo, logger *slog.Logger) {
	ctx := context.Background()
	marks := map[string][]string{
		entity.MarkFavorite: *favorites,
		entity.MarkIgnore:   *ignores,
	}
	for mark, list := range marks {
		for _, raw := range list {
			ins, err := instrument.Mark(ctx, symbolRepo, raw, mark)
			if err != nil {
				logger.Error("failed to mark symbol", "value", raw, "mark", mark, "error", err)
				continue
			}
			logger.Info("symbol marked", "symbol", ins.Symbol, "id", ins.MarketId(), "mark", mark)
		}
	}
}
