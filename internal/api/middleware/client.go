package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/sessions"
)

// RealIP подменяет RemoteAddr адресом клиента из X-Forwarded-For / X-Real-IP,
// но только если запрос пришел от доверенного прокси
type RealIP struct {
	trusted []netip.Prefix
}

// NewRealIP разбирает список доверенных прокси: адреса или CIDR.
// Пустой список - заголовки прокси игнорируются.
func NewRealIP(trustedProxies []string) (*RealIP, error) {
	trusted := make([]netip.Prefix, 0, len(trustedProxies))
	for _, raw := range trustedProxies {
		prefix, err := parseProxy(raw)
		if err != nil {
			return nil, err
		}
		trusted = append(trusted, prefix)
	}
	return &RealIP{trusted: trusted}, nil
}

// parseProxy разбирает адрес или CIDR доверенного прокси
func parseProxy(raw string) (netip.Prefix, error) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "/") {
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("middleware: invalid trusted proxy %q: %w", raw, err)
		}
		return prefix.Masked(), nil
	}

	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("middleware: invalid trusted proxy %q: %w", raw, err)
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// Handler выставляет RemoteAddr в адрес клиента
func (ri *RealIP) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip, ok := ri.resolve(r); ok {
			r.RemoteAddr = net.JoinHostPort(ip.String(), "0")
		}
		next.ServeHTTP(w, r)
	})
}

// resolve идет по X-Forwarded-For справа налево и возвращает первый адрес,
// не принадлежащий доверенным прокси
func (ri *RealIP) resolve(r *http.Request) (netip.Addr, bool) {
	remote, ok := remoteAddr(r)
	if !ok || !ri.isTrusted(remote) {
		return netip.Addr{}, false
	}

	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				return netip.Addr{}, false
			}
			addr = addr.Unmap()
			if !ri.isTrusted(addr) {
				return addr, true
			}
		}
		return netip.Addr{}, false
	}

	if addr, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return addr.Unmap(), true
	}
	return netip.Addr{}, false
}

func (ri *RealIP) isTrusted(addr netip.Addr) bool {
	for _, prefix := range ri.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteAddr(r *http.Request) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

// ClientIP возвращает адрес клиента из RemoteAddr.
// Заголовки прокси учитываются только через RealIP.
func ClientIP(r *http.Request) string {
	if addr, ok := remoteAddr(r); ok {
		return addr.String()
	}
	return domain.ClipClientField(r.RemoteAddr)
}

// ClientInfo описывает клиента для новой сессии
func ClientInfo(r *http.Request) domain.ClientInfo {
	var location *string
	if country := strings.TrimSpace(r.Header.Get("CF-IPCountry")); country != "" {
		location = &country
	}

	return sessions.DescribeClient(ClientIP(r), location, r.UserAgent())
}
