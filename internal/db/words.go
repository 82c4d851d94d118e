package db

import (
	"errors"

	"gorm.io/gorm"
)

// RandomWord returns one uniformly random word from the library.
func RandomWord(conn *gorm.DB) (string, error) {
	if conn == nil {
		return "", errors.New("db connection is nil")
	}
	var entry WordLibrary
	err := conn.Order("RANDOM()").Take(&entry).Error
	if err != nil {
		return "", err
	}
	return entry.Text, nil
}

// CountWords reports how many words the library holds.
func CountWords(conn *gorm.DB) (int64, error) {
	if conn == nil {
		return 0, errors.New("db connection is nil")
	}
	var count int64
	err := conn.Model(&WordLibrary{}).Count(&count).Error
	return count, err
}
