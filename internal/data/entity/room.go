package entity

type Room struct {
	Base
	RoomNumber  int `db:"room_number"`
	RowCount    int `db:"row_count"`
	ColumnCount int `db:"column_count"`
}

// Capacity is the seat count derived from the physical layout.
func (r *Room) Capacity() int {
	return r.RowCount * r.ColumnCount
}
