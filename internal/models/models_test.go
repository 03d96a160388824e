package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMSToKmh(t *testing.T) {
	assert.Equal(t, 36, MSToKmh(10))
	assert.Equal(t, 13, MSToKmh(3.5), "12.6 rounds up")
	assert.Equal(t, 0, MSToKmh(0))
}

func TestRoundC(t *testing.T) {
	assert.Equal(t, 22, RoundC(21.6))
	assert.Equal(t, 21, RoundC(21.4))
	assert.Equal(t, -3, RoundC(-2.5))
}

func TestWeatherIcon(t *testing.T) {
	assert.Equal(t, "fas fa-sun", WeatherIcon("01d"))
	assert.Equal(t, "fas fa-moon", WeatherIcon("01n"))
	assert.Equal(t, "fas fa-smog", WeatherIcon("50n"))
	assert.Equal(t, "fas fa-question-circle", WeatherIcon("99z"), "unknown code falls back")
	assert.Equal(t, "fas fa-question-circle", WeatherIcon(""))
}

func TestCountryName(t *testing.T) {
	assert.Equal(t, "Türkiye", CountryName("TR"))
	assert.Equal(t, "Almanya", CountryName("DE"))
	assert.Equal(t, "XX", CountryName("XX"), "unknown code passes through")
}
