// Package fuzztests houses Go fuzz harnesses for the analysis pipeline
// (source -> lexer -> parser -> scopes -> formatter). They guard against
// panics and hangs on arbitrary input.
//
// Назначение: прогонять произвольные байты через лексер, парсер, анализ с
// курсором и форматтер.
//
// Не делает: генерацию корпусов, запись файлов, запуск luacheck.
package fuzztests
