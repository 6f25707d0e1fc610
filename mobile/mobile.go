package mobile

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"xiangqi/internal/logx"
	"xiangqi/internal/record"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
)

// StartServer starts the local HTTP server.
// dataDir: app private storage, records go to dataDir/records
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
func StartServer(dataDir string, webDir string, port string) {
	log := logx.NewWithWriter(os.Stderr, "info", false)
	gin.SetMode(gin.ReleaseMode)

	var records record.Store
	if fs, err := record.NewFileStore(filepath.Join(dataDir, "records")); err == nil {
		records = fs
	} else {
		log.Error().Err(err).Msg("record dir unavailable, keeping records in memory")
		records = record.NewMemoryStore()
	}

	router := httpserver.NewRouter(log, game.NewManager(log), records, httpserver.Options{
		WebDir:    webDir,
		MobileDir: webDir,
	})

	// Run in background so it doesn't block the Android UI thread
	go func() {
		defer records.Close()
		if err := http.ListenAndServe("127.0.0.1:"+port, router); err != nil {
			log.Error().Err(err).Msg("server error")
		}
	}()
}
