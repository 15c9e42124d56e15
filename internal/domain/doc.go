// Package domain models the historical weather outlook: how often a given
// calendar day at a given place has been extreme over recent years.
//
// # Data Sources
//
// Coordinates come from a free-text geocoding lookup (Nominatim by default)
// backed by a static table of well-known cities. Observations come from a
// daily reanalysis archive (Open-Meteo archive by default, NASA POWER as an
// alternate). Both live behind the [Geocoder] and [Archive] ports so this
// package performs no I/O.
//
// # Sample Window
//
// A [SampleSet] holds one [DailySample] per year for a fixed month/day. The
// window ends at the most recently completed occurrence of that day:
//
//	today 2026-10-19, target 07-14  ->  2017..2026 (years=10)
//	today 2026-10-19, target 12-25  ->  2016..2025 (years=10)
//	today 2026-10-19, target 10-19  ->  2016..2025 (today is not complete)
//
// February 29 is a valid target; non-leap years simply contribute no sample.
//
// Wind is the daily mean 10 m wind speed from either archive
// (wind_speed_10m_mean, WS10M), so WINDY means the same thing per provider.
//
// # Missing Values
//
// Archives report gaps as JSON null (Open-Meteo) or -999 (NASA POWER). A gap
// is stored as a nil metric and is excluded from that metric's denominator
// only. A year with no metric at all is dropped from the set.
//
// # Exceedance
//
// Threshold tests are strict:
//
//	HOT    mean_temp_c   >  HotC   (30)
//	COLD   mean_temp_c   <  ColdC  (10)
//	WINDY  wind_speed_ms >  WindMS (10)
//	WET    precip_mm     >  RainMM (10)
//
// The dominant condition is the highest percentage. All-zero is COMFORTABLE;
// otherwise ties resolve HOT, COLD, WINDY, WET in that order.
package domain
