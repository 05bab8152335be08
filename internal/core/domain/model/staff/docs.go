// Package staff contains the availability registry side of the workflow
// domain. The StaffAvailability aggregate tracks one worker's shift state,
// the order they hold while busy, and the counters behind the performance
// dashboard. Role and Status are the closed enumerations the registry and
// the assignment queue agree on.
package staff
