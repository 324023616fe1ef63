// Package protocol defines the records of a location history export
// (Records.json) and how each of them is decoded from a decode.Source.
//
// Entry, Location, AccessPoint and LocationMetadata reject fields they do not
// declare. Activity, ActivityConfidence and WifiScan ignore them.
package protocol
