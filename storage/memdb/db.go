// Package memdb is the portal's storage backend: plain in-process tables
// behind the domain Repository interfaces. Nothing is persisted; the data's
// lifetime is the process's, which is the portal's contract.
package memdb

import (
	"sync"

	"github.com/elimuhub/elimu/core/academics"
	"github.com/elimuhub/elimu/core/attendance"
	"github.com/elimuhub/elimu/core/community"
	"github.com/elimuhub/elimu/core/messaging"
	"github.com/elimuhub/elimu/core/schedule"
	"github.com/elimuhub/elimu/core/session"
	"github.com/elimuhub/elimu/core/user"
	"github.com/elimuhub/elimu/core/vault"
)

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}
	sessionTable struct {
		mutex sync.RWMutex
		table map[string]*session.Session
	}
	threadTable struct {
		mutex    sync.RWMutex
		threads  map[string]*messaging.Thread
		messages map[string]*messaging.Message
		reads    map[string]map[string]bool // threadID -> userID -> read
	}
	fileTable struct {
		mutex sync.RWMutex
		table map[string]*vault.File
	}
	periodTable struct {
		mutex sync.RWMutex
		table map[string]*schedule.Period
	}
	attendanceTable struct {
		mutex sync.RWMutex
		table map[string]*attendance.Record
	}
	academicsTable struct {
		mutex       sync.RWMutex
		assignments map[string]*academics.Assignment
		submissions map[string]*academics.Submission
		grades      map[string]*academics.GradeRecord
	}
	communityTable struct {
		mutex       sync.RWMutex
		posts       map[string]*community.Post
		connections map[string]*community.Connection
	}

	DB struct {
		user       *userTable
		session    *sessionTable
		messaging  *threadTable
		vault      *fileTable
		schedule   *periodTable
		attendance *attendanceTable
		academics  *academicsTable
		community  *communityTable
	}
)

func Open() *DB {
	return &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		session:    &sessionTable{table: make(map[string]*session.Session)},
		messaging:  &threadTable{threads: make(map[string]*messaging.Thread), messages: make(map[string]*messaging.Message), reads: make(map[string]map[string]bool)},
		vault:      &fileTable{table: make(map[string]*vault.File)},
		schedule:   &periodTable{table: make(map[string]*schedule.Period)},
		attendance: &attendanceTable{table: make(map[string]*attendance.Record)},
		academics:  &academicsTable{assignments: make(map[string]*academics.Assignment), submissions: make(map[string]*academics.Submission), grades: make(map[string]*academics.GradeRecord)},
		community:  &communityTable{posts: make(map[string]*community.Post), connections: make(map[string]*community.Connection)},
	}
}
