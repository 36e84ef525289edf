package rating

import (
	"time"
	_ "time/tzdata"
)

// Location é o fuso de Moscou (UTC+3) usado em todos os snapshots e no cron,
// independente do fuso da máquina.
var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		panic(err)
	}
}

// TimestampLayout é o formato exibido aos usuários
const TimestampLayout = "2006-01-02 15:04:05"

// Clock retorna o instante atual
type Clock func() time.Time

// Now retorna o horário atual em UTC+3
func Now() time.Time {
	return time.Now().In(Location)
}

// FormatTimestamp formata um instante no fuso UTC+3
func FormatTimestamp(t time.Time) string {
	return t.In(Location).Format(TimestampLayout)
}
