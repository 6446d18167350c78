// Package domain models Pakistani disease-surveillance and weather data.
//
// # Data Sources
//
// Health surveillance comes from two spreadsheet archives:
//
//	nihdata/<year>/*.xlsx     NIH weekly Field Epidemiology reports. One
//	                          workbook per epidemiological week, one sheet
//	                          per province plus a national "Pakistan" sheet.
//	denguedata/Patieints.xlsx Punjab dengue patient registry, one row per
//	                          confirmed or suspected case. The filename typo
//	                          is in the archive itself.
//
// Weather comes from an OpenWeatherMap-compatible API: current conditions
// for the monitored cities and daily historical aggregates for training.
//
// # Archive Conventions
//
// Week numbering:
//
//	NIH workbook names encode the reporting week as "week-<n>-<year>".
//	The report date is January 1 of the year plus (n-1) whole weeks. This
//	is NOT ISO-8601 week numbering; it is the convention the archive has
//	always used, and changing it would shift every historical row.
//	Example: week-21-2025 resolves to 2025-05-21.
//
// Case counting:
//
//	"Pakistan" sheets are national summaries; disease columns are summed,
//	skipping any column whose header mentions "total" to avoid double
//	counting. Provincial sheets sum every numeric cell after dropping a
//	trailing "Total" row when present.
//
// Registry coordinates:
//
//	Patient rows are kept only when their coordinates fall strictly inside
//	the Pakistan bounding box, 23-38°N and 60-78°E. Rows outside the box
//	are data-entry errors (swapped fields, missing minus signs).
//
// Seasons:
//
//	monsoon       June-October
//	post-monsoon  September-November (peak dengue transmission)
//	winter        December-March
//
// The monsoon and post-monsoon windows overlap; September and October carry
// both labels, matching the surveillance archive.
package domain
