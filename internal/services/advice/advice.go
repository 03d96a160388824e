// Package advice answers the dashboard's canned questions from a
// weather snapshot with rule-based Turkish recommendations.
package advice

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"weather-dashboard/internal/models"
)

// The canned questions the engine understands, as shown on the UI
// buttons.
const (
	QuestionClothing = "Bugün ne giymeliyim?"
	QuestionUmbrella = "Şemsiye almalı mıyım?"
	QuestionDriving  = "Sürüş koşulları nasıl?"
	QuestionSports   = "Spor yapmak için uygun mu?"
	QuestionEvening  = "Akşam hava soğur mu?"
	QuestionSummary  = "Hava durumu özeti"
	QuestionDay      = "Günün önerisi"
	QuestionHealth   = "Sağlık önerisi"
)

var greetings = []string{
	"Merhaba! Hava durumu hakkında size nasıl yardımcı olabilirim?",
	"Selam! Bugünkü hava için önerilerim var!",
	"İyi günler! Hava durumu konusunda sorularınızı bekliyorum!",
}

// Engine evaluates advice rules. The clock is injectable because the
// evening outlook depends on the season.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Answer dispatches a canned question against a snapshot. A nil
// snapshot means no city has been looked up yet.
func (e *Engine) Answer(question string, snap *models.WeatherSnapshot) string {
	if snap == nil {
		return "Önce bir şehir seçmeniz gerekiyor! 🌍"
	}

	temp := snap.Current.TemperatureC
	condition := snap.Current.Condition
	humidity := snap.Current.HumidityPct
	windSpeed := snap.Wind.SpeedKmh
	description := snap.Current.Description

	switch question {
	case QuestionClothing:
		return e.clothing(temp, condition, windSpeed)
	case QuestionUmbrella:
		return e.umbrella(condition, description)
	case QuestionDriving:
		return e.driving(condition, temp, windSpeed)
	case QuestionSports:
		return e.sports(temp, condition, windSpeed, humidity)
	case QuestionEvening:
		return e.evening(temp, condition)
	case QuestionSummary:
		return e.Summary(snap)
	case QuestionDay:
		return e.DayRecommendation(snap)
	case QuestionHealth:
		return e.HealthAdvice(snap)
	default:
		return "Bu konuda size yardımcı olamam. Lütfen hazır sorulardan birini seçin! 😊"
	}
}

func (e *Engine) clothing(temp int, condition string, windSpeed int) string {
	var advice, emoji string

	switch {
	case temp > 30:
		advice = "Hava çok sıcak! 🔥 Hafif, nefes alabilir kumaşlar tercih edin. Pamuklu tişört, şort veya ince elbise giyin. Güneş kremi ve şapka unutmayın!"
		emoji = "👕🩳"
	case temp > 25:
		advice = "Hava sıcak ve güzel! ☀️ Tişört, hafif pantolon veya etek giyebilirsiniz. Güneş gözlüğü almayı unutmayın!"
		emoji = "👕👖"
	case temp > 20:
		advice = "Hava ılık! 🌤️ Uzun kollu tişört veya hafif bir hırka yeterli olacaktır."
		emoji = "👔"
		if windSpeed > 20 {
			advice += " Rüzgarlı olduğu için hafif bir ceket alın."
		}
	case temp > 15:
		advice = "Hava serin! 🍂 Sweatshirt, hırka veya hafif ceket giyin. Katmanlı giyim önerilir."
		emoji = "🧥"
	case temp > 10:
		advice = "Hava soğuk! ❄️ Kalın kazak veya mont gerekli. Boyunluk veya atkı da alabilirsiniz."
		emoji = "🧥🧣"
	case temp > 0:
		advice = "Hava çok soğuk! 🥶 Kalın mont, kazak, eldiven, atkı ve bere şart! Katmanlı giyinin."
		emoji = "🧥🧤🧣"
	default:
		advice = "Hava dondurucu! 🧊 En kalın kıyafetlerinizi giyin. Mont, kazak, termal iç çamaşırı, eldiven, atkı ve bere mutlaka gerekli!"
		emoji = "🧥🧤🧣🧢"
	}

	switch condition {
	case "Rain", "Drizzle":
		advice += " Su geçirmez bir mont veya yağmurluk giymeyi unutmayın! ☔"
	case "Snow":
		advice += " Su geçirmez bot ve kaygan olmayan tabanlar tercih edin! ⛄"
	case "Thunderstorm":
		advice += " Fırtına var, mümkünse dışarı çıkmayın! ⛈️"
	}

	return emoji + " " + advice
}

func (e *Engine) umbrella(condition, description string) string {
	lightRainKeywords := []string{"hafif", "çiseleyen", "yer yer"}

	switch condition {
	case "Thunderstorm":
		return "⛈️ Şiddetli fırtına bekleniyor! Şemsiye yerine sağlam bir yağmurluk tercih edin ve mümkünse dışarı çıkmayın."
	case "Rain", "Drizzle":
		light := condition == "Drizzle"
		for _, keyword := range lightRainKeywords {
			if strings.Contains(description, keyword) {
				light = true
				break
			}
		}
		if light {
			return "🌦️ Hafif yağmur bekleniyor. Şemsiye alın ama küçük bir şemsiye yeterli olabilir."
		}
		return "☔ Yağmur kesin! Şemsiyenizi mutlaka yanınıza alın. Kapüşonlu bir mont da iyi alternatif olabilir."
	case "Clouds":
		return "☁️ Bulutlu ama şimdilik yağmur yok. Güvenlik için küçük bir şemsiye alabilirsiniz."
	default:
		return "☀️ Güneşli hava! Şemsiye gerekli değil ama güneş şemsiyesi düşünebilirsiniz."
	}
}

func (e *Engine) driving(condition string, temp, windSpeed int) string {
	advice := "🚗 Sürüş koşulları: "
	riskLevel := "Düşük"

	switch {
	case condition == "Snow":
		advice += "⛄ Kar yağışı nedeniyle yollar kaygan! Kış lastiği takın, yavaş gidin ve ani fren yapmayın."
		riskLevel = "Yüksek"
	case condition == "Thunderstorm":
		advice += "⛈️ Fırtına nedeniyle görüş mesafesi çok düşük! Mümkünse sürüşü erteleyin."
		riskLevel = "Çok Yüksek"
	case condition == "Rain":
		advice += "☔ Yağmur nedeniyle yollar kaygan olabilir. Mesafeyi artırın ve dikkatli olun."
		riskLevel = "Orta"
	case condition == "Fog" || condition == "Mist":
		advice += "🌫️ Sis nedeniyle görüş mesafesi düşük. Farları açın ve yavaş gidin."
		riskLevel = "Orta"
	case windSpeed > 40:
		advice += "💨 Şiddetli rüzgar! Direksiyon kontrolünü kaybetmeyin, özellikle köprülerde dikkatli olun."
		riskLevel = "Orta"
	case temp < 5:
		advice += "🧊 Buzlanma riski var! Yavaş gidin ve ani manevra yapmayın."
		riskLevel = "Orta"
	default:
		advice += "✅ İyi koşullar! Normal sürüş yapabilirsiniz."
	}

	return advice + "\n\n🎯 Risk Seviyesi: " + riskLevel
}

func (e *Engine) sports(temp int, condition string, windSpeed, humidity int) string {
	advice := "🏃‍♂️ Spor durumu: "
	var recommendation string

	switch {
	case temp > 35:
		advice += "🔥 Çok sıcak! Açık havada spor yapmanız önerilmez."
		recommendation = "Kapalı alan sporları tercih edin."
	case temp > 30:
		advice += "☀️ Sıcak ama yapılabilir. Erken sabah veya akşam saatlerini tercih edin."
		recommendation = "Bol su için ve güneş kremi sürün."
	case temp > 15 && temp <= 25:
		advice += "🌟 Mükemmel spor havası! İdeal sıcaklık."
		recommendation = "Tüm outdoor sporlar için harika!"
	case temp > 5:
		advice += "🍂 Serin ama uygun. Isınma hareketlerine önem verin."
		recommendation = "Katmanlı giyim ve iyi ısınma önemli."
	default:
		advice += "❄️ Çok soğuk! Kapalı alan sporları tercih edin."
		recommendation = "Dışarıda spor yapacaksanız çok iyi giyinin."
	}

	switch {
	case condition == "Rain" || condition == "Drizzle":
		advice += "\n☔ Yağmur var! Kapalı alan sporları önerilir."
	case condition == "Thunderstorm":
		advice += "\n⛈️ Fırtına! Kesinlikle dışarıda spor yapmayın."
	case condition == "Snow":
		advice += "\n⛄ Kar yağışı! Kış sporları için ideal ama kaygan zemin dikkat."
	case windSpeed > 30:
		advice += "\n💨 Çok rüzgarlı! Açık havada spor zor olabilir."
	}

	if humidity > 80 {
		advice += "\n💧 Nem oranı yüksek, daha çabuk yorulabilirsiniz."
	}

	return advice + "\n\n💡 Önerim: " + recommendation
}

func (e *Engine) evening(temp int, condition string) string {
	advice := "🌅 Akşam hava durumu: "

	month := e.now().Month()
	isWinter := month == time.December || month == time.January || month == time.February
	isSummer := month == time.June || month == time.July || month == time.August
	isSpring := month == time.March || month == time.April || month == time.May
	isAutumn := month == time.September || month == time.October || month == time.November

	switch {
	case temp > 25:
		if isSummer {
			advice += "Akşam hala sıcak olacak, ama hafif serinleyebilir. "
		} else {
			advice += "Akşam biraz serinleyecek, hafif bir hırka alın. "
		}
	case temp > 15:
		if isWinter {
			advice += "Akşam soğuyacak, mont almayı unutmayın. "
		} else {
			advice += "Akşam serin olacak, ceket gerekebilir. "
		}
	case temp > 5:
		advice += "Akşam oldukça soğuk olacak, kalın kıyafet gerekli. "
	default:
		advice += "Akşam çok soğuk olacak, en kalın kıyafetlerinizi giyin. "
	}

	switch condition {
	case "Clear":
		advice += "☀️ Güneşli bir akşam bekleniyor!"
	case "Clouds":
		advice += "☁️ Bulutlu bir akşam olacak."
	case "Rain":
		advice += "☔ Akşam yağmur devam edebilir."
	case "Snow":
		advice += "⛄ Kar yağışı akşam da sürebilir."
	}

	switch {
	case isSpring:
		advice += "\n🌸 İlkbahar akşamları değişken olabilir, yanınıza hafif bir ceket alın."
	case isAutumn:
		advice += "\n🍂 Sonbahar akşamları serin geçer, ısınabilecek bir şeyler alın."
	case isWinter:
		advice += "\n❄️ Kış akşamları erken kararır ve soğuk geçer."
	case isSummer:
		advice += "\n☀️ Yaz akşamları genelde güzel geçer!"
	}

	return advice
}

// Summary renders the multi-line weather overview shown in the chat
// panel.
func (e *Engine) Summary(snap *models.WeatherSnapshot) string {
	if snap == nil {
		return "Hava durumu verisi bulunamadı."
	}

	return fmt.Sprintf(`📍 %s, %s
🌡️ Sıcaklık: %d°C (Hissedilen: %d°C)
🌤️ Durum: %s
💧 Nem: %d%%
💨 Rüzgar: %d km/h
👁️ Görüş: %d km`,
		snap.City.Name, snap.City.Country,
		snap.Current.TemperatureC, snap.Current.FeelsLikeC,
		snap.Current.Description,
		snap.Current.HumidityPct,
		snap.Wind.SpeedKmh,
		snap.Current.VisibilityKm)
}

// DayRecommendation suggests an activity for the day.
func (e *Engine) DayRecommendation(snap *models.WeatherSnapshot) string {
	if snap == nil {
		return "Önce bir şehir seçin! 🌍"
	}

	temp := snap.Current.TemperatureC
	condition := snap.Current.Condition

	recommendation := "🎯 Bugün için önerim: "

	switch {
	case condition == "Clear" && temp > 20 && temp < 30:
		recommendation += "Mükemmel bir gün! Açık havada vakit geçirin, piknik yapın veya yürüyüş yapın! 🌞"
	case condition == "Rain":
		recommendation += "Yağmurlu bir gün. Evde rahat vakit geçirin, kitap okuyun veya film izleyin! ☔📚"
	case condition == "Snow":
		recommendation += "Karlı bir gün! Sıcak içecekler için ve kar manzarasının tadını çıkarın! ⛄☕"
	case temp > 30:
		recommendation += "Çok sıcak! Gölgede vakit geçirin, bol su için ve serin yerleri tercih edin! 🏖️"
	case temp < 5:
		recommendation += "Çok soğuk! Sıcak kalın, sıcak içecekler için ve kapalı aktiviteler yapın! 🏠☕"
	default:
		recommendation += "Normal bir gün. Aktivitelerinizi rahatlıkla yapabilirsiniz! 😊"
	}

	return recommendation
}

// HealthAdvice flags weather-related health risks.
func (e *Engine) HealthAdvice(snap *models.WeatherSnapshot) string {
	if snap == nil {
		return "Hava durumu verisi gerekli! 🌍"
	}

	temp := snap.Current.TemperatureC
	humidity := snap.Current.HumidityPct
	condition := snap.Current.Condition

	advice := "🏥 Sağlık önerisi: "

	switch {
	case temp > 35:
		advice += "Çok sıcak! Çok su için, gölgede kalın ve ağır aktivitelerden kaçının. Sıcak çarpması riski! 🌡️💧"
	case temp < 0:
		advice += "Dondurucu soğuk! Vücut ısısını koruyun, ekstremiteleri koruyun. Hipotermiye dikkat! 🧊🧥"
	case humidity > 80:
		advice += "Yüksek nem! Nefes almakta zorluk çekebilirsiniz. Astım hastalarının dikkatli olması gerekiyor. 💧😷"
	case condition == "Fog" || condition == "Mist":
		advice += "Sisli hava! Görüş bozukluğu ve nem nedeniyle solunum sorunları artabilir. 🌫️"
	case condition == "Clear" && temp > 25:
		advice += "Güneşli! UV ışınlarından korunun, güneş kremi sürün. D vitamini sentezi için güzel! ☀️🧴"
	default:
		advice += "Sağlık açısından uygun bir hava! Normal aktivitelerinizi yapabilirsiniz. ✅"
	}

	return advice
}

// Greeting returns a random canned greeting.
func (e *Engine) Greeting() string {
	return greetings[rand.Intn(len(greetings))]
}
