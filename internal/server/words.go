package server

import (
	"errors"
	"math/rand"

	"wordwolf/internal/db"

	"gorm.io/gorm"
)

// WordSource supplies the secret word for a new game. The word pool is data,
// not logic: it comes from the word_library table when a database is
// configured and from the built-in list otherwise.
type WordSource interface {
	RandomWord() (string, error)
}

type staticWordSource struct {
	words []string
}

func NewStaticWordSource(words []string) WordSource {
	return &staticWordSource{words: words}
}

func (s *staticWordSource) RandomWord() (string, error) {
	if len(s.words) == 0 {
		return "", errors.New("word list is empty")
	}
	return s.words[rand.Intn(len(s.words))], nil
}

type dbWordSource struct {
	conn     *gorm.DB
	fallback WordSource
}

func NewDBWordSource(conn *gorm.DB) WordSource {
	return &dbWordSource{
		conn:     conn,
		fallback: NewStaticWordSource(defaultWords),
	}
}

func (s *dbWordSource) RandomWord() (string, error) {
	word, err := db.RandomWord(s.conn)
	if err != nil {
		return s.fallback.RandomWord()
	}
	return word, nil
}

// defaultWords is the built-in Persian word pool, used when no database is
// configured.
var defaultWords = []string{
	"کتاب", "موسیقی", "درخت", "آسمان", "کامپیوتر", "گل", "دریا",
	"کوه", "خانه", "دانشگاه", "پارک", "دوست", "آموزش", "آشپزی",
	"خورشید", "ماه", "ستاره", "ابر", "باران", "برف", "باد", "طوفان",
	"خاک", "آتش", "یخ", "برق", "سنگ", "گیاه",
	"پروانه", "مورچه", "زنبور", "عنکبوت", "لاک‌پشت",
	"فیل", "ببر", "خرس", "گرگ", "روباه", "خرگوش", "سنجاب", "گربه",
	"عقاب", "اردک", "خروس", "ماهی", "اسب", "گوسفند",
	"سیب", "موز", "پرتقال", "لیمو", "انار", "هویج", "خیار",
	"گوجه", "پیاز", "فلفل", "نان", "برنج", "سوپ", "پیتزا",
	"چای", "قهوه", "قاشق", "چنگال", "چاقو",
	"بشقاب", "لیوان", "صندلی", "میز", "تخت", "مبل", "کمد", "چراغ",
	"تلویزیون", "رادیو", "موبایل", "دوربین", "کیف", "کفش",
	"کراوات", "کمربند", "ساعت", "عینک", "کلاه", "دستکش", "جوراب",
}
