package sources

import (
	"net/url"
	"strings"

	"github.com/terra-clan/battery-guide/internal/models"
)

// TrustedDomains lists the hosts accepted as sources of battery data.
// Subdomains of an entry are trusted as well.
var TrustedDomains = []string{
	// Manufacturer datasheets and official sites
	"data.energizer.com",
	"www.energizer.com",
	"energizer.com",
	"www.duracell.com",
	"duracell.com",
	"panasonic.com",
	"www.panasonic.com",
	"samsung.com",
	"www.samsung.com",
	"lg.com",
	"www.lg.com",
	"sony.com",
	"www.sony.com",
	"maxell.com",
	"www.maxell.com",
	"varta-consumer.com",
	"www.varta-consumer.com",
	"rayovac.com",
	"www.rayovac.com",

	// Standards organizations
	"iec.ch",
	"www.iec.ch",
	"ansi.org",
	"www.ansi.org",

	// Technical references
	"batteryuniversity.com",
	"www.batteryuniversity.com",
	"batteryequivalents.com",
	"www.batteryequivalents.com",
	"en.wikipedia.org",
	"wikipedia.org",

	// Retailers publishing datasheets
	"18650batterystore.com",
	"www.18650batterystore.com",
	"batteryjunction.com",
	"www.batteryjunction.com",
	"digikey.com",
	"www.digikey.com",
	"mouser.com",
	"www.mouser.com",
	"farnell.com",
	"www.farnell.com",
}

// IsTrusted reports whether rawURL points at a trusted domain.
// Anything that does not parse as an absolute URL with a host is untrusted.
func IsTrusted(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	for _, domain := range TrustedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// FilterTrusted keeps the sources whose URL is trusted; sources without a URL are dropped
func FilterTrusted(sources []models.Source) []models.Source {
	result := make([]models.Source, 0, len(sources))
	for _, s := range sources {
		if s.URL != "" && IsTrusted(s.URL) {
			result = append(result, s)
		}
	}
	return result
}
