package potatoengine

import "fmt"

func (db *DB) execVacuum() Result {
	purged := db.store.Vacuum()
	return okResult(fmt.Sprintf("VACUUM: purged %d row(s)", purged), purged)
}
