// README: City code reference entries (city name -> IATA code).
package citycode

type Entry struct {
	City     string `bson:"city" json:"city"`
	IATACode string `bson:"iata_code" json:"iata_code"`
}
