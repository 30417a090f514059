package serve

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/server"
	"github.com/safesistemas/cejoana/pkg/store"
)

// Runner serves a backend over the JSON API.
type Runner struct {
	Backend store.Backend
	Schemas []*record.Schema

	ListenAddr  string
	Token       string
	OnListening func(net.Addr)
	CertFile    string
	KeyFile     string
}

// Do serves until ctx is cancelled.
func (r Runner) Do(ctx context.Context) error {
	if r.Backend == nil {
		return errors.New("serve runner requires a backend")
	}
	if (r.CertFile != "" && r.KeyFile == "") || (r.CertFile == "" && r.KeyFile != "") {
		return errors.New("both tls cert and key must be provided")
	}

	handler, err := server.New(server.Config{
		Token:   r.Token,
		Backend: r.Backend,
		Schemas: r.Schemas,
	})
	if err != nil {
		return err
	}

	listenAddr := r.ListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:8080"
	}
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	if r.OnListening != nil {
		r.OnListening(ln.Addr())
	}
	log.Printf("serving %d tables on %s", len(r.Schemas), ln.Addr())

	httpSrv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.CertFile != "" {
		err = httpSrv.ServeTLS(ln, r.CertFile, r.KeyFile)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
