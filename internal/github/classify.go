package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	gogithub "github.com/google/go-github/v62/github"

	ghproerrors "ghpro.dev/ghpro/internal/errors"
)

// classify maps go-github and transport errors onto the tool's error kinds.
// kind and name describe the entity the caller was after, for not-found
// messages. All API error inspection is confined to this function.
func classify(err error, kind, name string) error {
	if err == nil {
		return nil
	}

	var rateErr *gogithub.RateLimitError
	if errors.As(err, &rateErr) {
		return ghproerrors.NewRateLimitError(time.Until(rateErr.Rate.Reset.Time))
	}

	var abuseErr *gogithub.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		var retryAfter time.Duration
		if abuseErr.RetryAfter != nil {
			retryAfter = *abuseErr.RetryAfter
		}
		return ghproerrors.NewRateLimitError(retryAfter)
	}

	var respErr *gogithub.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return ghproerrors.NewAuthenticationError(respErr.Message)
		case http.StatusForbidden:
			// Non-rate-limit 403s are credential problems (scopes, SSO)
			return ghproerrors.NewAuthenticationError(respErr.Message)
		case http.StatusNotFound:
			return ghproerrors.NewNotFoundError(kind, name)
		}
		return err
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ghproerrors.NewNetworkError(urlErr)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ghproerrors.NewNetworkError(err)
	}

	return err
}
