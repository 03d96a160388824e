// Package imagery holds the static city-image catalog and the name
// normalization used for domestic-city classification.
package imagery

import (
	"os"
	"path/filepath"
	"strings"
)

// cityImages maps normalized Turkish province names to bundled assets.
var cityImages = map[string]string{
	"adana":      "images/adana.png",
	"adiyaman":   "images/adiyaman.png",
	"afyon":      "images/afyon.png",
	"agri":       "images/agri.png",
	"aksaray":    "images/aksaray.png",
	"amasya":     "images/amasya.png",
	"ankara":     "images/ankara.png",
	"antalya":    "images/antalya.png",
	"ardahan":    "images/ardahan.png",
	"artvin":     "images/artvin.png",
	"aydin":      "images/aydin.png",
	"balikesir":  "images/balikesir.png",
	"bartin":     "images/bartin.png",
	"batman":     "images/batman.png",
	"bayburt":    "images/bayburt.png",
	"bilecik":    "images/bilecik.png",
	"bingol":     "images/bingol.png",
	"bitlis":     "images/bitlis.png",
	"bolu":       "images/bolu.png",
	"burdur":     "images/burdur.png",
	"bursa":      "images/bursa.png",
	"canakkale":  "images/canakkale.png",
	"cankiri":    "images/cankiri.png",
	"corum":      "images/corum.png",
	"denizli":    "images/denizli.png",
	"diyarbakir": "images/diyarbakir.png",
	"duzce":      "images/duzce.png",
	"edirne":     "images/edirne.png",
	"elazig":     "images/elazig.png",
	"erzincan":   "images/erzincan.png",
	"erzurum":    "images/erzurum.png",
	"eskisehir":  "images/eskisehir.png",
	"gaziantep":  "images/gaziantep.png",
	"giresun":    "images/giresun.png",
	"gumushane":  "images/gumushane.png",
	"hakkari":    "images/hakkari.png",
	"hatay":      "images/hatay.png",
	"igdir":      "images/igdir.png",
	"isparta":    "images/isparta.png",
	"istanbul":   "images/istanbul.png",
	"izmir":      "images/izmir.png",
	"karabuk":    "images/karabuk.png",
	"karaman":    "images/karaman.png",
	"kars":       "images/kars.png",
	"kastamonu":  "images/kastamonu.png",
	"kayseri":    "images/kayseri.png",
	"kilis":      "images/kilis.png",
	"kirikkale":  "images/kirikkale.png",
	"kirklareli": "images/kirklareli.png",
	"kirsehir":   "images/kirsehir.png",
	"kocaeli":    "images/kocaeli.jpg",
	"konya":      "images/konya.png",
	"kutahya":    "images/kutahya.png",
	"malatya":    "images/malatya.png",
	"manisa":     "images/manisa.png",
	"maras":      "images/maras.png",
	"mardin":     "images/mardin.png",
	"mersin":     "images/mersin.png",
	"mugla":      "images/mugla.png",
	"mus":        "images/mus.png",
	"nevsehir":   "images/nevsehir.png",
	"nigde":      "images/nigde.png",
	"ordu":       "images/ordu.png",
	"osmaniye":   "images/osmaniye.png",
	"rize":       "images/rize.png",
	"sakarya":    "images/sakarya.png",
	"samsun":     "images/samsun.png",
	"sanliurfa":  "images/sanliurfa.png",
	"siirt":      "images/siirt.png",
	"sinop":      "images/sinop.png",
	"sirnak":     "images/sirnak.png",
	"sivas":      "images/sivas.png",
	"tekirdag":   "images/tekirdag.png",
	"tokat":      "images/tokat.png",
	"trabzon":    "images/trabzon.png",
	"tunceli":    "images/tunceli.png",
	"usak":       "images/usak.png",
	"van":        "images/van.png",
	"yalova":     "images/yalova.png",
	"yozgat":     "images/yozgat.png",
	"zonguldak":  "images/zonguldak.png",
}

// cityAliases maps longer official or colloquial names onto the
// catalog's short names.
var cityAliases = map[string]string{
	"afyonkarahisar": "afyon",
	"kahramanmaras":  "maras",
	"urfa":           "sanliurfa",
	"icel":           "mersin",
}

// DefaultImage is the terminal fallback of the background chain.
const DefaultImage = "images/default.jpg"

// HomeCountryCode is the ISO code of the country covered by the local
// asset catalog.
const HomeCountryCode = "TR"

// Normalize folds Turkish diacritics onto ASCII, lower-cases, and strips
// whitespace and everything outside [a-z0-9].
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case 'ğ', 'Ğ':
			r = 'g'
		case 'ü', 'Ü':
			r = 'u'
		case 'ş', 'Ş':
			r = 's'
		case 'ı', 'I', 'İ':
			r = 'i'
		case 'ö', 'Ö':
			r = 'o'
		case 'ç', 'Ç':
			r = 'c'
		case 'â', 'Â':
			r = 'a'
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// canonical resolves aliases after normalization.
func canonical(name string) string {
	n := Normalize(name)
	if alias, ok := cityAliases[n]; ok {
		return alias
	}
	return n
}

// IsTurkishCity reports whether a city belongs to the domestic catalog.
// An empty country code does not disqualify; any non-TR code does.
func IsTurkishCity(name, countryCode string) bool {
	if countryCode != "" && countryCode != HomeCountryCode {
		return false
	}
	_, ok := cityImages[canonical(name)]
	return ok
}

// Catalog resolves domestic cities to on-disk assets under a base dir.
type Catalog struct {
	assetsDir string
}

func NewCatalog(assetsDir string) *Catalog {
	return &Catalog{assetsDir: assetsDir}
}

// LocalAsset returns the catalog path for a domestic city after probing
// that the asset actually exists and is non-empty. The probe is a
// runtime check on purpose: assets can come and go under the running
// process, and a miss just pushes the chain to the next tier.
func (c *Catalog) LocalAsset(name string) (string, bool) {
	rel, ok := cityImages[canonical(name)]
	if !ok {
		return "", false
	}

	info, err := os.Stat(filepath.Join(c.assetsDir, filepath.FromSlash(rel)))
	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", false
	}
	return rel, true
}
