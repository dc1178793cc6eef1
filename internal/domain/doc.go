// Package domain turns Utah Department of Transportation (UDOT) traffic feeds
// into the sentences of a spoken traffic report.
//
// # Data Source
//
// Four feeds come from the UDOT Traffic API (https://www.udottraffic.utah.gov/api/v2/get/...),
// each queried with the operator's API key and format=json:
//
//	roadconditions   one record per monitored roadway segment
//	mountainpasses   one record per pass weather station
//	alerts           statewide advisories tagged with UDOT regions
//	servicevehicles  snowplow and service vehicle positions
//
// A feed that fails to load is an empty feed. Nothing in this package returns
// an error for missing or malformed upstream data; such records are skipped.
//
// # UDOT Data Conventions
//
// Road conditions:
//
//	RoadCondition is "Dry" and WeatherCondition is "Fair" when nothing is
//	happening. Any other combination is worth mentioning. Missing values are
//	reported as "Unknown".
//
// Mountain pass visibility:
//
//	Visibility is in miles and arrives as a number, a numeric string, the
//	literal "None", an empty string, or null. Only values that parse as a
//	finite number are compared. At or below 4 miles is "low", at or below 8
//	miles is "lowered".
//
// Advisories:
//
//	StartTime and EndTime are Unix epoch seconds, possibly fractional. An
//	advisory whose times do not parse is dropped on its own. Messages announcing the
//	standing "Seasonal Road Closures" are ignored; they are true all winter
//	and would repeat in every report.
//
// Service vehicles:
//
//	Bearing is degrees clockwise from north. LastUpdated is Unix epoch
//	seconds; a record without one is dropped. A vehicle is reported only when it was seen within the trailing
//	window (one hour by default), lies within the configured radius of the
//	station's reference point, and reverse geocodes to a street and a city.
//
// # Geometry
//
// Distances use the haversine formula on a sphere of radius 3958.8 miles.
// Bearings map onto eight 45 degree sectors centered on the compass points
// (North, North-East, ... North-West); an exact sector boundary rounds half to
// even, so 22.5 degrees is North and 67.5 degrees is East.
//
// # Report Layout
//
// The report is a fixed sequence: introduction, road conditions, mountain
// passes, advisories, service vehicles, outro. Within a category sentences
// follow the feed's own order. Road conditions and mountain passes fall back to
// an "all clear" sentence when nothing qualified; advisories and vehicles
// simply contribute nothing.
package domain
