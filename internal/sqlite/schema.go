package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// createPets is the DDL for the pets table, derived from the column
// constants in pkg/types.
var createPets = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    %s INTEGER PRIMARY KEY AUTOINCREMENT,
    %s TEXT NOT NULL,
    %s TEXT,
    %s INTEGER NOT NULL,
    %s INTEGER NOT NULL DEFAULT 0
);`,
	types.PetsTable,
	types.ColumnID,
	types.ColumnName,
	types.ColumnBreed,
	types.ColumnGender,
	types.ColumnWeight,
)

// Statements over the full column set. Projected selects are built per
// query in pets_table.go.
var (
	insertPetSQL = fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s) VALUES (?, ?, ?, ?)",
		types.PetsTable, types.ColumnName, types.ColumnBreed, types.ColumnGender, types.ColumnWeight)

	updatePetSQL = fmt.Sprintf("UPDATE %s SET %s = ?, %s = ?, %s = ?, %s = ? WHERE %s = ?",
		types.PetsTable, types.ColumnName, types.ColumnBreed, types.ColumnGender, types.ColumnWeight, types.ColumnID)

	deletePetSQL = fmt.Sprintf("DELETE FROM %s WHERE %s = ?", types.PetsTable, types.ColumnID)

	deleteAllPetsSQL = fmt.Sprintf("DELETE FROM %s", types.PetsTable)

	countPetsSQL = fmt.Sprintf("SELECT COUNT(*) FROM %s", types.PetsTable)
)
