package transport

// Topics understood by the dashboard.
const (
	TopicOutdoorTemp     = "homeassistant/sensor/outdoor_temperature/state"
	TopicOutdoorDewPoint = "homeassistant/sensor/outdoor_dew_point/state"
	TopicOutdoorPM25     = "homeassistant/sensor/outdoor_pm_25m/state"
	TopicLivingRoomTemp  = "homeassistant/sensor/living_room_temperature/state"
	TopicLivingRoomDew   = "homeassistant/sensor/living_room_dew_point/state"
	TopicWindSpeed       = "piweather/wind_speed_mph"
	TopicRainfall        = "piweather/rainfall_last_hour"

	TopicWeatherCurrent  = "weather/current/state"
	TopicForecastState   = "weather/forecast/state"
	TopicForecastTemp    = "weather/forecast/temperature"
	TopicSun             = "weather/sun"
	TopicThermostatState = "thermostat/state"
	TopicCalendarEvent   = "calendar/event"
	TopicSignBrightness  = "sign/brightness"
	TopicSignQR          = "sign/qr"
	TopicDebugWidget     = "debug/widget"
)

// Subscriptions returns the filters a broker connection subscribes to.
func Subscriptions() []string {
	return []string{
		TopicOutdoorTemp,
		TopicOutdoorDewPoint,
		TopicOutdoorPM25,
		TopicLivingRoomTemp,
		TopicLivingRoomDew,
		TopicWindSpeed,
		TopicRainfall,
		"thermostat/#",
		"weather/#",
		"sign/#",
		"icon/#",
		"debug/#",
		"calendar/#",
	}
}
