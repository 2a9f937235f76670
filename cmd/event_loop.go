package cmd

import (
	"errors"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/check-pyproject/internal/log"
	"github.com/anchore/check-pyproject/internal/ui"
)

// eventLoop drives a validation run until both the worker has finished and the UI has seen the final report
// (or a signal arrives). Per-manifest events and the ValidationFinished report are handed to the UI; worker
// failures end the subscription early and are returned with any UI errors.
func eventLoop(workerErrs <-chan error, signals <-chan os.Signal, subscription *partybus.Subscription, cleanupFn func(), ux ui.UI) error {
	defer cleanupFn()

	ux, err := setupUI(subscription.Unsubscribe, ux)
	if err != nil {
		return err
	}

	var (
		retErr      error
		interrupted bool
		events      = subscription.Events()
	)

	for workerErrs != nil || events != nil {
		select {
		case err, open := <-workerErrs:
			if !open {
				workerErrs = nil
				continue
			}
			if err == nil {
				continue
			}
			// no report will follow a failed run
			retErr = multierror.Append(retErr, err)
			if err := subscription.Unsubscribe(); err != nil {
				retErr = multierror.Append(retErr, err)
			}

		case e, open := <-events:
			if !open {
				events = nil
				continue
			}
			err := ux.Handle(e)
			switch {
			case err == nil:
			case errors.Is(err, partybus.ErrUnsubscribe):
				log.Warnf("unable to unsubscribe from the event bus")
				events = nil
			default:
				retErr = multierror.Append(retErr, err)
			}

		case <-signals:
			interrupted = true
			events = nil
			workerErrs = nil
		}
	}

	if err := ux.Teardown(interrupted); err != nil {
		retErr = multierror.Append(retErr, err)
	}
	return retErr
}

// setupUI prepares the given UI, falling back to plain logging when it cannot be set up.
func setupUI(unsubscribe func() error, ux ui.UI) (ui.UI, error) {
	err := ux.Setup(unsubscribe)
	if err == nil {
		return ux, nil
	}

	fallback := ui.NewLoggerUI(os.Stdout)
	if fallbackErr := fallback.Setup(unsubscribe); fallbackErr != nil {
		return fallback, fallbackErr
	}
	log.Errorf("unable to setup UI, falling back to logger: %+v", err)
	return fallback, nil
}
