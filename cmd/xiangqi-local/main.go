package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"xiangqi/internal/config"
	"xiangqi/internal/logx"
	"xiangqi/internal/record"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
)

const (
	pruneEvery = 10 * time.Minute
	maxIdle    = 6 * time.Hour
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 没有图形界面的机器上会失败，不管
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// 命令行参数覆盖环境变量
	flag.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "listen address")
	flag.StringVar(&cfg.Server.WebDir, "web", cfg.Server.WebDir, "directory with index.html / js / svg")
	flag.StringVar(&cfg.Server.MobileDir, "web-mobile", cfg.Server.MobileDir, "directory with the mobile pages")
	flag.BoolVar(&cfg.Server.OpenBrowser, "open", cfg.Server.OpenBrowser, "open the default browser")
	flag.StringVar(&cfg.Store.Backend, "store", cfg.Store.Backend, "record store: file | mongo | memory")
	flag.StringVar(&cfg.Store.Dir, "records", cfg.Store.Dir, "record directory for the file store")
	flag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	flag.Parse()

	log := logx.New(cfg.Log.Level, cfg.Log.Console)
	if cfg.Log.Level != "debug" && cfg.Log.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := record.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("open record store")
	}
	defer store.Close()

	games := game.NewManager(log)
	router := httpserver.NewRouter(log, games, store, httpserver.Options{
		WebDir:    cfg.Server.WebDir,
		MobileDir: cfg.Server.MobileDir,
	})
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Server.Addr).Msg("listen")
	}
	log.Info().Str("addr", cfg.Server.Addr).Str("web", cfg.Server.WebDir).
		Str("store", cfg.Store.Backend).Msg("listening")

	if cfg.Server.OpenBrowser {
		// 端口已经在监听了，可以直接打开
		_, port, _ := net.SplitHostPort(ln.Addr().String())
		go openBrowser("http://127.0.0.1:" + port)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		t := time.NewTicker(pruneEvery)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-t.C:
				games.PruneIdle(now, maxIdle)
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return
	}
	log.Info().Msg("bye")
}
