package models

// countryNames maps ISO country codes to the Turkish display names the
// dashboard shows next to the city.
var countryNames = map[string]string{
	"TR": "Türkiye",
	"US": "Amerika Birleşik Devletleri",
	"GB": "Birleşik Krallık",
	"DE": "Almanya",
	"FR": "Fransa",
	"IT": "İtalya",
	"ES": "İspanya",
	"GR": "Yunanistan",
	"BG": "Bulgaristan",
	"RO": "Romanya",
	"UA": "Ukrayna",
	"RU": "Rusya",
	"SA": "Suudi Arabistan",
	"AE": "Birleşik Arap Emirlikleri",
	"EG": "Mısır",
	"JP": "Japonya",
	"CN": "Çin",
	"IN": "Hindistan",
	"AU": "Avustralya",
	"CA": "Kanada",
	"BR": "Brezilya",
	"MX": "Meksika",
	"AR": "Arjantin",
	"NL": "Hollanda",
	"BE": "Belçika",
	"CH": "İsviçre",
	"AT": "Avusturya",
	"SE": "İsveç",
	"NO": "Norveç",
	"DK": "Danimarka",
	"FI": "Finlandiya",
	"PL": "Polonya",
	"CZ": "Çek Cumhuriyeti",
	"HU": "Macaristan",
	"PT": "Portekiz",
	"IE": "İrlanda",
	"IL": "İsrail",
	"KR": "Güney Kore",
	"TH": "Tayland",
	"SG": "Singapur",
	"MY": "Malezya",
	"PH": "Filipinler",
	"VN": "Vietnam",
	"ID": "Endonezya",
	"ZA": "Güney Afrika",
	"MA": "Fas",
	"DZ": "Cezayir",
	"TN": "Tunus",
	"LY": "Libya",
	"SD": "Sudan",
	"ET": "Etiyopya",
	"KE": "Kenya",
	"TZ": "Tanzanya",
	"UG": "Uganda",
	"GH": "Gana",
	"NG": "Nijerya",
	"CI": "Fildişi Sahili",
	"SN": "Senegal",
	"ML": "Mali",
	"BF": "Burkina Faso",
	"NE": "Nijer",
	"TD": "Çad",
	"CF": "Orta Afrika Cumhuriyeti",
	"CM": "Kamerun",
	"GA": "Gabon",
	"CG": "Kongo",
	"CD": "Demokratik Kongo Cumhuriyeti",
	"AO": "Angola",
	"ZM": "Zambiya",
	"ZW": "Zimbabve",
	"BW": "Botsvana",
	"NA": "Namibya",
	"MW": "Malavi",
	"MZ": "Mozambik",
	"MG": "Madagaskar",
	"MU": "Mauritius",
	"SC": "Seyşeller",
}

// CountryName returns the display name for an ISO code, or the code
// itself when no translation is registered.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return code
}
