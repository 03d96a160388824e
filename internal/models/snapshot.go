package models

import (
	"fmt"
	"math"
	"time"
)

// City identifies the resolved location of a lookup.
type City struct {
	Name        string  `json:"name" example:"İzmir"`
	Country     string  `json:"country" example:"Türkiye"`
	CountryCode string  `json:"countryCode" example:"TR"`
	Lat         float64 `json:"lat" example:"38.4192"`
	Lon         float64 `json:"lon" example:"27.1287"`
}

// Current holds the normalized current-conditions fields.
type Current struct {
	TemperatureC int     `json:"temperatureC" example:"24"`
	FeelsLikeC   int     `json:"feelsLikeC" example:"26"`
	HumidityPct  int     `json:"humidityPct" example:"58"`
	PressureHPa  int     `json:"pressureHPa" example:"1013"`
	VisibilityKm int     `json:"visibilityKm" example:"10"`
	UVIndex      float64 `json:"uvIndex" example:"6.2"`
	Description  string  `json:"description" example:"açık"`
	IconCode     string  `json:"iconCode" example:"01d"`
	Condition    string  `json:"condition" example:"Clear"`
}

// Wind holds normalized wind fields. Gust is nil when the provider omits it.
type Wind struct {
	SpeedKmh     int  `json:"speedKmh" example:"14"`
	DirectionDeg int  `json:"directionDeg" example:"230"`
	GustKmh      *int `json:"gustKmh,omitempty" example:"22"`
}

// WeatherSnapshot is the immutable normalized view produced per lookup.
type WeatherSnapshot struct {
	City      City       `json:"city"`
	Current   Current    `json:"current"`
	Wind      Wind       `json:"wind"`
	Sunrise   *time.Time `json:"sunrise,omitempty"`
	Sunset    *time.Time `json:"sunset,omitempty"`
	FetchedAt time.Time  `json:"fetchedAt"`
}

// DailyForecast is one day of the 5-day outlook, bucketed from the
// provider's 3-hourly entries.
type DailyForecast struct {
	Date        time.Time `json:"date"`
	MinC        int       `json:"minC"`
	MaxC        int       `json:"maxC"`
	AvgC        int       `json:"avgC"`
	Description string    `json:"description"`
	IconCode    string    `json:"iconCode"`
	HumidityPct int       `json:"humidityPct"`
	WindKmh     int       `json:"windKmh"`
}

func (s WeatherSnapshot) RequestParams() string {
	return fmt.Sprintf("city: %s country: %s lat: %.4f lon: %.4f",
		s.City.Name, s.City.CountryCode, s.City.Lat, s.City.Lon)
}

// MSToKmh converts a provider wind speed in m/s to a rounded km/h value.
func MSToKmh(ms float64) int {
	return int(math.Round(ms * 3.6))
}

// RoundC rounds a provider temperature float to a whole degree.
func RoundC(c float64) int {
	return int(math.Round(c))
}
