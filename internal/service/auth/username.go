package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// maxUsernameAttempts число попыток подобрать свободный username с числовым суффиксом
const maxUsernameAttempts = 100

// usernameBase строит username из локальной части email
func usernameBase(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		}
	}

	base := b.String()
	if len(base) < domain.MinUsernameLength {
		base = "user" + base
	}
	// Оставляем место под числовой суффикс
	if limit := domain.MaxUsernameLength - 4; len(base) > limit {
		base = base[:limit]
	}
	return base
}

// uniqueUsername подбирает свободный username: base, base1, base2, ...
func (s *Service) uniqueUsername(ctx context.Context, email string) (string, error) {
	base := usernameBase(email)

	for i := 0; i < maxUsernameAttempts; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s%d", base, i)
		}

		exists, err := s.userRepo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no free username for base %q", base)
}
