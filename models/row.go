package models

// Row and Rows are the loosely typed sheet values exchanged with the
// spreadsheet collaborators (excelize writer, Google Sheets push).
type Row []interface{}

type Rows [][]interface{}
