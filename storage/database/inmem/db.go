package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/watch"
)

// DB is an in-memory database for development and tests. Rows keep their
// insertion order so queries are deterministic.
type (
	DB struct {
		course *courseTable
		watch  *watchTable
	}

	courseRow struct {
		crs course.Course
		seq int
	}

	courseTable struct {
		table map[string]*courseRow
		seq   int
		mutex sync.RWMutex
	}

	watchRow struct {
		w   watch.Watch
		seq int
	}

	watchTable struct {
		table map[string]*watchRow
		seq   int
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		course: &courseTable{table: make(map[string]*courseRow)},
		watch:  &watchTable{table: make(map[string]*watchRow)},
	}
}

// Reset drops all rows; test helper.
func (db *DB) Reset() {
	db.course.mutex.Lock()
	db.course.table = make(map[string]*courseRow)
	db.course.mutex.Unlock()

	db.watch.mutex.Lock()
	db.watch.table = make(map[string]*watchRow)
	db.watch.mutex.Unlock()
}
