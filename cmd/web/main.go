package main

import (
	_ "embed"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tomz197/meteorfall/internal/config"
)

//go:embed index.html
var htmlPage string

var configFlag = flag.String("config", config.GetEnv("METEORFALL_CONFIG", ""), "Path to a TOML settings file")

func main() {
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := config.NewLogger(settings.Log, os.Stderr, "web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	addr := net.JoinHostPort(settings.Web.Host, settings.Web.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(htmlPage, settings.Web.DisplayHost, settings.SSH.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting web server", "url", "http://"+addr, "sshHost", settings.Web.DisplayHost)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newHandler serves the landing page with the SSH command filled in.
func newHandler(page, sshHost, sshPort string) http.Handler {
	command := "ssh " + sshHost
	if sshPort != "" && sshPort != "22" {
		command = fmt.Sprintf("ssh -p %s %s", sshPort, sshHost)
	}
	rendered := strings.NewReplacer(
		"{{.SSHHost}}", sshHost,
		"{{.SSHCommand}}", command,
	).Replace(page)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, rendered)
	})
	return mux
}
