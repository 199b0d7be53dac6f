package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	defaults := server.DefaultOptions()

	serveCmd := &cobra.Command{
		Use:   ServeCmdName,
		Short: ServeCmdShort,
		Long:  ServeCmdLong,
		RunE:  serveCmdFunc(v),
	}
	serveCmd.Flags().String(addrKey, ":8080", "address to listen on")
	serveCmd.Flags().Float64(rateLimitKey, defaults.RateLimit, "requests per second, 0 disables limiting")
	serveCmd.Flags().Int(burstKey, defaults.Burst, "request burst size")
	v.BindPFlags(serveCmd.Flags())
	return serveCmd
}

func serveCmdFunc(v *viper.Viper) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		calc, log, err := loadCalculator(v)
		if err != nil {
			return err
		}
		defer log.Sync()

		log.Info("Started serve cmd")

		opts := server.DefaultOptions()
		opts.RateLimit = v.GetFloat64(rateLimitKey)
		opts.Burst = v.GetInt(burstKey)

		serve := server.NewHTTPServer(v.GetString(addrKey), calc, log, opts)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("listening", zap.String("addr", serve.Addr))
			errCh <- serve.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("server failed", zap.Error(err))
				return err
			}
			return nil
		case <-ctx.Done():
			log.Info("Shutdown the server...", zap.String("reason", context.Cause(ctx).Error()))
		}

		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return serve.Shutdown(shutCtx)
	}
}
