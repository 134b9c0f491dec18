package dao

import (
	"errors"
	"fmt"
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/treeforest/basex"
	log "github.com/treeforest/logger"
	"path/filepath"
	"sync"
	"time"
)

const (
	dbName         = "ALPHABETS"    // 数据库名
	alphabetPrefix = "__alphabet__" // 字符表记录 key 前缀

	defNameCap  = 10000 // 名称过滤器预估容量
	defNameRate = 0.01  // 名称过滤器误判率
)

var (
	ErrNotFound  = errors.New("alphabet not found")
	ErrEmptyName = errors.New("empty alphabet name")
)

// DAO 自定义字符表存储对象
type DAO struct {
	*leveldb.DB
	locker sync.RWMutex
	names  *bloom.BloomFilter // 已存储名称的 Bloom 过滤器
}

func New(dbPath string) (*DAO, error) {
	path := filepath.Join(dbPath, dbName)
	log.Debug("db path:", path)
	levelDB, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("open leveldb [%s] error [%v]", path, err)
	}

	o := &DAO{DB: levelDB, names: bloom.NewWithEstimates(defNameCap, defNameRate)}
	if err = o.loadNames(); err != nil {
		_ = levelDB.Close()
		return nil, err
	}
	return o, nil
}

// loadNames fills the name filter from the stored records.
func (o *DAO) loadNames() error {
	iter := o.DB.NewIterator(util.BytesPrefix([]byte(alphabetPrefix)), nil)
	defer iter.Release()

	count := 0
	for iter.Next() {
		o.names.Add(iter.Key()[len(alphabetPrefix):])
		count++
	}
	if err := iter.Error(); err != nil {
		return fmt.Errorf("load alphabet names failed: %v", err)
	}
	log.Debugf("loaded %d stored alphabets", count)
	return nil
}

func (o *DAO) Close() error {
	return o.DB.Close()
}

func (o *DAO) key(name string) []byte {
	return []byte(alphabetPrefix + name)
}

// Put 保存自定义字符表，symbols 必须是合法的字符表
func (o *DAO) Put(name, symbols string) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, err := basex.NewAlphabet(symbols); err != nil {
		return err
	}

	r := &Record{Name: name, Symbols: symbols, Created: time.Now().Unix()}
	data, err := r.Marshal()
	if err != nil {
		return err
	}

	err = o.DoTransaction(func(trans *leveldb.Transaction) error {
		if err := trans.Put(o.key(name), data, &opt.WriteOptions{Sync: true}); err != nil {
			return fmt.Errorf("insert alphabet failed: %v", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	o.locker.Lock()
	o.names.AddString(name)
	o.locker.Unlock()
	return nil
}

func (o *DAO) Get(name string) (*Record, error) {
	o.locker.RLock()
	maybe := o.names.TestString(name)
	o.locker.RUnlock()
	if !maybe {
		return nil, ErrNotFound
	}

	data, err := o.DB.Get(o.key(name), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get alphabet failed: %v", err)
	}
	return Unmarshal(data)
}

// Delete 删除字符表，不存在时返回 ErrNotFound
func (o *DAO) Delete(name string) error {
	return o.DoTransaction(func(trans *leveldb.Transaction) error {
		has, err := trans.Has(o.key(name), nil)
		if err != nil {
			return fmt.Errorf("check alphabet failed: %v", err)
		}
		if !has {
			return ErrNotFound
		}
		if err = trans.Delete(o.key(name), nil); err != nil {
			return fmt.Errorf("delete alphabet failed: %v", err)
		}
		return nil
	})
}

// List returns every stored record ordered by name.
func (o *DAO) List() ([]Record, error) {
	iter := o.DB.NewIterator(util.BytesPrefix([]byte(alphabetPrefix)), nil)
	defer iter.Release()

	records := make([]Record, 0)
	for iter.Next() {
		r, err := Unmarshal(iter.Value())
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate alphabets failed: %v", err)
	}
	return records, nil
}

// DoTransaction 事务操作
func (o *DAO) DoTransaction(fn func(trans *leveldb.Transaction) error) (err error) {
	trans, err := o.DB.OpenTransaction()
	if err != nil {
		return fmt.Errorf("open transaction failed: %v", err)
	}
	defer func() {
		if err != nil {
			// 事务提交失败，销毁事务
			trans.Discard()
		}
	}()

	if err = fn(trans); err != nil {
		return err
	}

	if err = trans.Commit(); err != nil {
		return fmt.Errorf("commit failed: %v", err)
	}

	return nil
}
