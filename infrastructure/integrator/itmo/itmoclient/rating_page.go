package itmoclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrUnexpectedStatus = errors.New("status inesperado da página de ranking")

// GetRatingPage baixa a página de ranking e devolve o documento HTML.
// Com RATING_FETCH_RETRIES > 0, falhas de rede e respostas 5xx são repetidas com
// backoff exponencial; respostas 4xx não são repetidas.
func (c *ITMOClient) GetRatingPage(ctx context.Context) (*goquery.Document, error) {
	var doc *goquery.Document

	operation := func() error {
		var err error
		doc, err = c.fetch(ctx)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(c.backOff(), uint64(c.config.FetchRetries)),
		ctx,
	)

	notify := func(err error, wait time.Duration) {
		logrus.WithError(err).WithField("retry_in", wait.String()).Warn("Falha ao buscar página de ranking, tentando novamente")
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}

	return doc, nil
}

func (c *ITMOClient) fetch(ctx context.Context) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.config.RequestTimeoutSeconds)*time.Second)
	defer cancel()

	// Criar a requisição HTTP.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.URL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("erro ao criar a requisição: %w", err))
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "text/html")

	// Executar a requisição.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		err := fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		if resp.StatusCode < http.StatusInternalServerError {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o HTML: %w", err)
	}

	return doc, nil
}

func newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}
