package server

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// ctxがcancelされるまでサーバーを動かす
func Start(ctx context.Context, app *App) error {
	e := NewRouter(app)

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info().Str("addr", app.Config.Addr()).Msg("server starting")
		if err := e.Start(app.Config.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	//処理中のリクエストは待つ
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	app.Logger.Info().Msg("server shutting down")
	return e.Shutdown(shutdownCtx)
}
