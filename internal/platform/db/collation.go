package db

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// defaultVarcharSize is used for case-sensitive columns declared without a size.
const defaultVarcharSize = 255

// CaseSensitive is implemented by models whose string columns must compare
// byte for byte, including in unique indexes.
type CaseSensitive interface {
	CaseSensitiveColumns() []string
}

// ApplyBinaryCollation switches the columns named by every CaseSensitive model
// to utf8mb4_bin. MySQL's default collation folds case; sqlite and postgres
// already compare exactly, so other dialects are left untouched.
func ApplyBinaryCollation(gdb *gorm.DB, models ...any) error {
	if gdb.Dialector.Name() != DriverMySQL {
		return nil
	}

	cache := &sync.Map{}
	for _, m := range models {
		cs, ok := m.(CaseSensitive)
		if !ok {
			continue
		}
		s, err := schema.Parse(m, cache, gdb.NamingStrategy)
		if err != nil {
			return fmt.Errorf("failed to parse model %T: %w", m, err)
		}
		for _, name := range cs.CaseSensitiveColumns() {
			f := s.LookUpField(name)
			if f == nil {
				return fmt.Errorf("model %T has no column %q", m, name)
			}
			if err := gdb.Exec(binaryColumnDDL(s.Table, f)).Error; err != nil {
				return fmt.Errorf("failed to set binary collation on %s.%s: %w", s.Table, f.DBName, err)
			}
		}
	}
	return nil
}

func binaryColumnDDL(table string, f *schema.Field) string {
	size := f.Size
	if size <= 0 {
		size = defaultVarcharSize
	}
	ddl := fmt.Sprintf("ALTER TABLE `%s` MODIFY `%s` VARCHAR(%d) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin", table, f.DBName, size)
	if f.NotNull {
		ddl += " NOT NULL"
	}
	return ddl
}
