package model

// CarEntry describes one car of the session roster.
type CarEntry struct {
	Car    Car    `json:"car"`
	Team   Team   `json:"team"`
	Driver Driver `json:"driver"`
}

type Car struct {
	// CarID is the provider identity of the car (typically the race number
	// as a string, e.g. "44")
	CarID  string `json:"carId"`
	Number int    `json:"number"`
}

type Team struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Driver struct {
	Name       string `json:"name"`
	AbbrevName string `json:"abbrevName"`
}
