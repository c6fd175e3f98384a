package sessions

import (
	"strings"

	"github.com/mssola/useragent"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

const unknown = "Unknown"

// DescribeClient разбирает User-Agent и собирает сведения об устройстве клиента.
// Поля с ограниченной длиной обрезаются до domain.MaxClientFieldLength.
func DescribeClient(ip string, location *string, userAgent string) domain.ClientInfo {
	info := domain.ClientInfo{
		IP:        domain.ClipClientField(ip),
		Location:  clipLocation(location),
		UserAgent: userAgent,
		Device:    domain.DeviceDesktop,
		Platform:  unknown,
		Browser:   unknown,
	}
	if userAgent == "" {
		return info
	}

	ua := useragent.New(userAgent)

	if os := ua.OS(); os != "" {
		info.Platform = os
	} else if platform := ua.Platform(); platform != "" {
		info.Platform = platform
	}

	if name, version := ua.Browser(); name != "" {
		info.Browser = name
		if version != "" {
			info.Browser = name + " " + version
		}
	}

	info.Platform = domain.ClipClientField(info.Platform)
	info.Browser = domain.ClipClientField(info.Browser)
	info.Device = deviceClass(ua, userAgent)
	return info
}

func clipLocation(location *string) *string {
	if location == nil {
		return nil
	}
	clipped := domain.ClipClientField(*location)
	if clipped == "" {
		return nil
	}
	return &clipped
}

func deviceClass(ua *useragent.UserAgent, raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case ua.Bot():
		return domain.DeviceBot
	case strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet"):
		return domain.DeviceTablet
	case strings.Contains(lower, "android") && !strings.Contains(lower, "mobile"):
		// Android-планшеты не указывают "Mobile" в User-Agent
		return domain.DeviceTablet
	case ua.Mobile():
		return domain.DeviceMobile
	default:
		return domain.DeviceDesktop
	}
}
