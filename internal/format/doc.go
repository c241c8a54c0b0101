// Package format reformats Lua buffers and turns the result into text edits.
//
// Форматтер работает по токенам: пересчитывает отступы по вложенности блоков,
// убирает хвостовые пробелы, схлопывает пустые строки и при желании
// нормализует кавычки. Порядок токенов и комментарии не меняются.
// Не делает: переноса длинных строк и выравнивания.
package format
