package builtin_test

import "testing"

func TestConsCarCdr(t *testing.T) {
	requireInt(t, `(car (cons 1 2))`, 1)
	requireInt(t, `(cdr (cons 1 2))`, 2)
}

func TestListLengthAppendReverse(t *testing.T) {
	requireInt(t, `(length (list 1 2 3 4))`, 4)
	requireInt(t, `(car (append (list 1 2) (list 3 4)))`, 1)
	requireInt(t, `(car (reverse (list 1 2 3)))`, 3)
}

func TestListTailAndRef(t *testing.T) {
	requireInt(t, `(list-ref (list 1 2 3) 2)`, 3)
	requireInt(t, `(car (list-tail (list 1 2 3) 1))`, 2)
}

func TestMakeListAndListCopy(t *testing.T) {
	requireInt(t, `(length (make-list 5 0))`, 5)
	requireInt(t, `(car (list-copy (list 1 2 3)))`, 1)
}

func TestSetCarSetCdr(t *testing.T) {
	requireInt(t, `(let ((p (cons 1 2))) (set-car! p 9) (car p))`, 9)
	requireInt(t, `(let ((p (cons 1 2))) (set-cdr! p 9) (cdr p))`, 9)
}

func TestApplyMapForEachFilter(t *testing.T) {
	requireInt(t, `(apply + (list 1 2 3))`, 6)
	requireInt(t, `(car (map (lambda (x) (* x x)) (list 1 2 3)))`, 1)
	requireInt(t, `(length (filter even? (list 1 2 3 4 5 6)))`, 3)
	requireInt(t, `
		(let ((sum 0))
		  (for-each (lambda (x) (set! sum (+ sum x))) (list 1 2 3))
		  sum)`, 6)
}

func TestFoldLeftFoldRight(t *testing.T) {
	requireInt(t, `(fold-left - 0 (list 1 2 3))`, -6)
	requireInt(t, `(car (fold-right cons '() (list 1 2 3)))`, 1)
}

func TestSortAndVectorListConversion(t *testing.T) {
	requireInt(t, `(car (sort (list 3 1 2) <))`, 1)
	requireInt(t, `(vector-ref (list->vector (list 1 2 3)) 1)`, 2)
	requireInt(t, `(car (vector->list #(1 2 3)))`, 1)
}

func TestAssqAssvAssoc(t *testing.T) {
	requireInt(t, `(cdr (assq 'b (list (cons 'a 1) (cons 'b 2))))`, 2)
	requireInt(t, `(cdr (assv 2 (list (cons 1 10) (cons 2 20))))`, 20)
	requireInt(t, `(cdr (assoc "b" (list (cons "a" 1) (cons "b" 2))))`, 2)
}

func TestMemqMemvMember(t *testing.T) {
	requireBool(t, `(if (memq 'c (list 'a 'b 'c)) #t #f)`, true)
	requireBool(t, `(if (member "z" (list "a" "b")) #t #f)`, false)
}
