package migration

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/repository"
)

// ParseUsers lê o arquivo legado de assinantes: um chat id por linha, linhas vazias ignoradas.
// Ids repetidos aparecem uma única vez, na ordem da primeira ocorrência.
func ParseUsers(r io.Reader) ([]int64, error) {
	scanner := bufio.NewScanner(r)

	var (
		ids  []int64
		seen = make(map[int64]struct{})
		line int
	)

	for scanner.Scan() {
		line++
		value := strings.TrimSpace(scanner.Text())
		if value == "" {
			continue
		}

		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("linha %d: chat id inválido %q: %w", line, value, err)
		}

		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de assinantes: %w", err)
	}

	return ids, nil
}

// ImportUsers marca cada chat como inscrito. Reexecutar é seguro.
func ImportUsers(ctx context.Context, subscribers repository.SubscriberRepository, chatIDs []int64) (int, error) {
	for i, chatID := range chatIDs {
		if err := subscribers.SetSubscribed(ctx, chatID, true); err != nil {
			return i, fmt.Errorf("erro ao importar chat %d: %w", chatID, err)
		}
	}

	logrus.WithField("subscribers", len(chatIDs)).Info("Assinantes importados")

	return len(chatIDs), nil
}
