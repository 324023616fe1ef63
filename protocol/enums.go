package protocol

import "github.com/chaisql/locationhistory/decode"

// Source is the positioning method of an entry.
type Source uint8

// List of entry sources.
const (
	SourceUnknown Source = iota
	SourceGPS
	SourceCell
	SourceWifi
)

var sourceVariants = decode.Variants[Source]{
	{Token: "GPS", Value: SourceGPS},
	{Token: "CELL", Value: SourceCell},
	{Token: "WIFI", Value: SourceWifi},
	{Token: "UNKNOWN", Value: SourceUnknown},
}

func (s Source) String() string {
	return sourceVariants.Token(s)
}

// Sources returns every entry source.
func Sources() []Source {
	out := make([]Source, len(sourceVariants))
	for i, v := range sourceVariants {
		out[i] = v.Value
	}
	return out
}

// ActivityType is the kind of activity detected by the device.
type ActivityType uint8

// List of activity types.
const (
	ActivityUnknown ActivityType = iota
	ActivityStill
	ActivityInVehicle
	ActivityOnFoot
	ActivityTilting
	ActivityOnBicycle
	ActivityExitingVehicle
	ActivityWalking
	ActivityRunning
	ActivityInRoadVehicle
	ActivityInRailVehicle
	ActivityInFourWheelerVehicle
	ActivityInTwoWheelerVehicle
	ActivityInCar
	ActivityInBus
)

var activityTypeVariants = decode.Variants[ActivityType]{
	{Token: "STILL", Value: ActivityStill},
	{Token: "UNKNOWN", Value: ActivityUnknown},
	{Token: "IN_VEHICLE", Value: ActivityInVehicle},
	{Token: "ON_FOOT", Value: ActivityOnFoot},
	{Token: "TILTING", Value: ActivityTilting},
	{Token: "ON_BICYCLE", Value: ActivityOnBicycle},
	{Token: "EXITING_VEHICLE", Value: ActivityExitingVehicle},
	{Token: "WALKING", Value: ActivityWalking},
	{Token: "RUNNING", Value: ActivityRunning},
	{Token: "IN_ROAD_VEHICLE", Value: ActivityInRoadVehicle},
	{Token: "IN_RAIL_VEHICLE", Value: ActivityInRailVehicle},
	{Token: "IN_FOUR_WHEELER_VEHICLE", Value: ActivityInFourWheelerVehicle},
	{Token: "IN_TWO_WHEELER_VEHICLE", Value: ActivityInTwoWheelerVehicle},
	{Token: "IN_CAR", Value: ActivityInCar},
	{Token: "IN_BUS", Value: ActivityInBus},
}

func (a ActivityType) String() string {
	return activityTypeVariants.Token(a)
}

// DeviceDesignation tells whether the reporting device is the account's primary one.
type DeviceDesignation uint8

// List of device designations.
const (
	DesignationUnknown DeviceDesignation = iota
	DesignationPrimary
)

var deviceDesignationVariants = decode.Variants[DeviceDesignation]{
	{Token: "UNKNOWN", Value: DesignationUnknown},
	{Token: "PRIMARY", Value: DesignationPrimary},
}

func (d DeviceDesignation) String() string {
	return deviceDesignationVariants.Token(d)
}

// PlatformType is the operating system family of the device.
type PlatformType uint8

// List of platform types.
const (
	PlatformAndroid PlatformType = iota
)

var platformTypeVariants = decode.Variants[PlatformType]{
	{Token: "ANDROID", Value: PlatformAndroid},
}

func (p PlatformType) String() string {
	return platformTypeVariants.Token(p)
}

// FormFactor is the kind of device.
type FormFactor uint8

// List of form factors.
const (
	FormFactorPhone FormFactor = iota
)

var formFactorVariants = decode.Variants[FormFactor]{
	{Token: "PHONE", Value: FormFactorPhone},
}

func (f FormFactor) String() string {
	return formFactorVariants.Token(f)
}
