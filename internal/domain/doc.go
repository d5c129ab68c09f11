// Package domain models NOAA National Data Buoy Center (NDBC) marine
// telemetry reports.
//
// # Data Source
//
// Readings come from the NDBC plain-text feeds at https://www.ndbc.noaa.gov:
// /data/hourly2/hour_HH.txt aggregates every station's reports for one UTC
// hour, and /data/realtime2/STATION.txt holds roughly 45 days of readings for
// a single station. Both share one record shape: a whitespace-delimited
// header line followed by whitespace-delimited data lines.
//
// # NDBC Format Conventions
//
// Header line:
//
//	#STN  LAT  LON  YY  MM  DD  hh  mm  WDIR  WSPD  GST  WVHT ... ATMP  WTMP ...
//	The station id column carries a '#' marker, stripped during parsing.
//
// Timestamps:
//
//	YY/MM/DD/hh/mm columns, UTC, minute precision. Two-digit years are
//	prefixed with "20", so YY=98 reads as 2098; the quirk is documented
//	rather than guessed around. A record missing any component has no
//	derivable timestamp and is never chosen as a station's newest reading.
//
// Missing values:
//
//	"MM" is the NDBC sentinel for an unreported metric. Missing values
//	propagate as an explicit not-reported marker, never as zero.
//
// Units as published:
//
//	temperatures degC, wind m/s, wave height m, direction true degrees.
//	Conversion to display units (degF, mph, ft, 8-point compass) happens
//	at the edges via the converters in units.go.
package domain
