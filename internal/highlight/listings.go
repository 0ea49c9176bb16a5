package highlight

const (
	LangCpp  = "cpp"
	LangJava = "java"
)

// Program point labels. Runners announce these; each listing maps them to
// its own line numbers.
const (
	Outer        = "outer"
	Inner        = "inner"
	Compare      = "compare"
	Swap         = "swap"
	Pass         = "pass"
	Done         = "done"
	NewMin       = "min"
	Key          = "key"
	Shift        = "shift"
	Place        = "place"
	Divide       = "divide"
	Recurse      = "recurse"
	Merge        = "merge"
	TakeLeft     = "take_left"
	TakeRight    = "take_right"
	DrainLeft    = "drain_left"
	DrainRight   = "drain_right"
	Partition    = "partition"
	Pivot        = "pivot"
	Heapify      = "heapify"
	CompareLeft  = "compare_left"
	CompareRight = "compare_right"
	Sift         = "sift"
	Build        = "build"
	Extract      = "extract"
	Reheap       = "reheap"
	Probe        = "probe"
	Found        = "found"
	GoLeft       = "left"
	GoRight      = "right"
	Missing      = "missing"
)

var listings = map[string]map[string]Listing{
	"bubble": {
		LangCpp: {
			Algorithm: "bubble", Language: LangCpp,
			Lines: []string{
				"void bubbleSort(vector<int>& arr) {",
				"    int n = arr.size();",
				"    for (int i = 0; i < n-1; i++) {",
				"        for (int j = 0; j < n-i-1; j++) {",
				"            if (arr[j] > arr[j+1]) {",
				"                swap(arr[j], arr[j+1]);",
				"            }",
				"        }",
				"    }",
				"}",
			},
			Points: map[string][]int{
				Outer: {2}, Inner: {3}, Compare: {4}, Swap: {5}, Pass: {7}, Done: {9},
			},
		},
		LangJava: {
			Algorithm: "bubble", Language: LangJava,
			Lines: []string{
				"void bubbleSort(int[] arr) {",
				"    int n = arr.length;",
				"    for (int i = 0; i < n - 1; i++) {",
				"        for (int j = 0; j < n - i - 1; j++) {",
				"            if (arr[j] > arr[j + 1]) {",
				"                int tmp = arr[j];",
				"                arr[j] = arr[j + 1];",
				"                arr[j + 1] = tmp;",
				"            }",
				"        }",
				"    }",
				"}",
			},
			Points: map[string][]int{
				Outer: {2}, Inner: {3}, Compare: {4}, Swap: {5, 6, 7}, Pass: {9}, Done: {11},
			},
		},
	},
	"selection": {
		LangCpp: {
			Algorithm: "selection", Language: LangCpp,
			Lines: []string{
				"void selectionSort(vector<int>& arr) {",
				"    int n = arr.size();",
				"    for (int i = 0; i < n - 1; i++) {",
				"        int minIndex = i;",
				"        for (int j = i + 1; j < n; j++) {",
				"            if (arr[j] < arr[minIndex]) {",
				"                minIndex = j;",
				"            }",
				"        }",
				"        swap(arr[i], arr[minIndex]);",
				"    }",
				"}",
			},
			Points: map[string][]int{
				Outer: {2, 3}, Inner: {4}, Compare: {5}, NewMin: {6}, Swap: {9}, Done: {11},
			},
		},
		LangJava: {
			Algorithm: "selection", Language: LangJava,
			Lines: []string{
				"void selectionSort(int[] arr) {",
				"    int n = arr.length;",
				"    for (int i = 0; i < n - 1; i++) {",
				"        int minIndex = i;",
				"        for (int j = i + 1; j < n; j++) {",
				"            if (arr[j] < arr[minIndex]) {",
				"                minIndex = j;",
				"            }",
				"        }",
				"        int tmp = arr[i];",
				"        arr[i] = arr[minIndex];",
				"        arr[minIndex] = tmp;",
				"    }",
				"}",
			},
			Points: map[string][]int{
				Outer: {2, 3}, Inner: {4}, Compare: {5}, NewMin: {6}, Swap: {9, 10, 11}, Done: {13},
			},
		},
	},
	"insertion": {
		LangCpp: {
			Algorithm: "insertion", Language: LangCpp,
			Lines: []string{
				"void insertionSort(vector<int>& arr) {",
				"    int n = arr.size();",
				"    for (int i = 1; i < n; i++) {",
				"        int key = arr[i];",
				"        int j = i - 1;",
				"        while (j >= 0 && arr[j] > key) {",
				"            arr[j + 1] = arr[j];",
				"            j = j - 1;",
				"        }",
				"        arr[j + 1] = key;",
				"    }",
				"}",
			},
			Points: map[string][]int{
				Outer: {2}, Key: {3, 4}, Compare: {5}, Shift: {6, 7}, Place: {9}, Done: {11},
			},
		},
		LangJava: {
			Algorithm: "insertion", Language: LangJava,
			Lines: []string{
				"void insertionSort(int[] arr) {",
				"    int n = arr.length;",
				"    for (int i = 1; i < n; i++) {",
				"        int key = arr[i];",
				"        int j = i - 1;",
				"        while (j >= 0 && arr[j] > key) {",
				"            arr[j + 1] = arr[j];",
				"            j--;",
				"        }",
				"        arr[j + 1] = key;",
				"    }",
				"}",
			},
			Points: map[string][]int{
				Outer: {2}, Key: {3, 4}, Compare: {5}, Shift: {6, 7}, Place: {9}, Done: {11},
			},
		},
	},
	"merge": {
		LangCpp: {
			Algorithm: "merge", Language: LangCpp,
			Lines: []string{
				"void mergeSort(vector<int>& arr, int left, int right) {",
				"    if (left >= right) return;",
				"    int mid = left + (right - left) / 2;",
				"    mergeSort(arr, left, mid);",
				"    mergeSort(arr, mid + 1, right);",
				"    merge(arr, left, mid, right);",
				"}",
				"void merge(vector<int>& arr, int left, int mid, int right) {",
				"    vector<int> leftArr(arr.begin() + left, arr.begin() + mid + 1);",
				"    vector<int> rightArr(arr.begin() + mid + 1, arr.begin() + right + 1);",
				"    int i = 0, j = 0, k = left;",
				"    while (i < leftArr.size() && j < rightArr.size()) {",
				"        if (leftArr[i] <= rightArr[j]) arr[k++] = leftArr[i++];",
				"        else arr[k++] = rightArr[j++];",
				"    }",
				"    while (i < leftArr.size()) arr[k++] = leftArr[i++];",
				"    while (j < rightArr.size()) arr[k++] = rightArr[j++];",
				"}",
			},
			Points: map[string][]int{
				Divide: {1, 2}, Recurse: {3, 4}, Merge: {5, 8, 9}, TakeLeft: {11, 12}, TakeRight: {11, 13},
				DrainLeft: {15}, DrainRight: {16}, Done: {6},
			},
		},
		LangJava: {
			Algorithm: "merge", Language: LangJava,
			Lines: []string{
				"void mergeSort(int[] arr, int left, int right) {",
				"    if (left >= right) return;",
				"    int mid = left + (right - left) / 2;",
				"    mergeSort(arr, left, mid);",
				"    mergeSort(arr, mid + 1, right);",
				"    merge(arr, left, mid, right);",
				"}",
				"void merge(int[] arr, int left, int mid, int right) {",
				"    int[] leftArr = Arrays.copyOfRange(arr, left, mid + 1);",
				"    int[] rightArr = Arrays.copyOfRange(arr, mid + 1, right + 1);",
				"    int i = 0, j = 0, k = left;",
				"    while (i < leftArr.length && j < rightArr.length) {",
				"        if (leftArr[i] <= rightArr[j]) arr[k++] = leftArr[i++];",
				"        else arr[k++] = rightArr[j++];",
				"    }",
				"    while (i < leftArr.length) arr[k++] = leftArr[i++];",
				"    while (j < rightArr.length) arr[k++] = rightArr[j++];",
				"}",
			},
			Points: map[string][]int{
				Divide: {1, 2}, Recurse: {3, 4}, Merge: {5, 8, 9}, TakeLeft: {11, 12}, TakeRight: {11, 13},
				DrainLeft: {15}, DrainRight: {16}, Done: {6},
			},
		},
	},
	"quick": {
		LangCpp: {
			Algorithm: "quick", Language: LangCpp,
			Lines: []string{
				"void quickSort(vector<int>& arr, int low, int high) {",
				"    if (low < high) {",
				"        int pivot = partition(arr, low, high);",
				"        quickSort(arr, low, pivot - 1);",
				"        quickSort(arr, pivot + 1, high);",
				"    }",
				"}",
				"int partition(vector<int>& arr, int low, int high) {",
				"    int pivot = arr[high];",
				"    int i = (low - 1);",
				"    for (int j = low; j <= high - 1; j++) {",
				"        if (arr[j] <= pivot) {",
				"            i++;",
				"            swap(arr[i], arr[j]);",
				"        }",
				"    }",
				"    swap(arr[i + 1], arr[high]);",
				"    return (i + 1);",
				"}",
			},
			Points: map[string][]int{
				Partition: {1, 2}, Recurse: {3, 4}, Pivot: {8, 9}, Compare: {10, 11}, Swap: {12, 13},
				Place: {16, 17}, Done: {6},
			},
		},
		LangJava: {
			Algorithm: "quick", Language: LangJava,
			Lines: []string{
				"void quickSort(int[] arr, int low, int high) {",
				"    if (low < high) {",
				"        int pivot = partition(arr, low, high);",
				"        quickSort(arr, low, pivot - 1);",
				"        quickSort(arr, pivot + 1, high);",
				"    }",
				"}",
				"int partition(int[] arr, int low, int high) {",
				"    int pivot = arr[high];",
				"    int i = low - 1;",
				"    for (int j = low; j < high; j++) {",
				"        if (arr[j] <= pivot) {",
				"            i++;",
				"            swap(arr, i, j);",
				"        }",
				"    }",
				"    swap(arr, i + 1, high);",
				"    return i + 1;",
				"}",
			},
			Points: map[string][]int{
				Partition: {1, 2}, Recurse: {3, 4}, Pivot: {8, 9}, Compare: {10, 11}, Swap: {12, 13},
				Place: {16, 17}, Done: {6},
			},
		},
	},
	"heap": {
		LangCpp: {
			Algorithm: "heap", Language: LangCpp,
			Lines: []string{
				"void heapify(vector<int>& arr, int n, int i) {",
				"    int largest = i;",
				"    int left = 2 * i + 1;",
				"    int right = 2 * i + 2;",
				"    if (left < n && arr[left] > arr[largest]) {",
				"        largest = left;",
				"    }",
				"    if (right < n && arr[right] > arr[largest]) {",
				"        largest = right;",
				"    }",
				"    if (largest != i) {",
				"        swap(arr[i], arr[largest]);",
				"        heapify(arr, n, largest);",
				"    }",
				"}",
				"void heapSort(vector<int>& arr) {",
				"    int n = arr.size();",
				"    for (int i = n / 2 - 1; i >= 0; i--) {",
				"        heapify(arr, n, i);",
				"    }",
				"    for (int i = n - 1; i > 0; i--) {",
				"        swap(arr[0], arr[i]);",
				"        heapify(arr, i, 0);",
				"    }",
				"}",
			},
			Points: map[string][]int{
				Heapify: {1, 2, 3}, CompareLeft: {4, 5}, CompareRight: {7, 8}, Swap: {10, 11}, Sift: {12},
				Build: {17, 18}, Extract: {20, 21}, Reheap: {22}, Done: {24},
			},
		},
		LangJava: {
			Algorithm: "heap", Language: LangJava,
			Lines: []string{
				"void heapify(int[] arr, int n, int i) {",
				"    int largest = i;",
				"    int left = 2 * i + 1;",
				"    int right = 2 * i + 2;",
				"    if (left < n && arr[left] > arr[largest]) {",
				"        largest = left;",
				"    }",
				"    if (right < n && arr[right] > arr[largest]) {",
				"        largest = right;",
				"    }",
				"    if (largest != i) {",
				"        swap(arr, i, largest);",
				"        heapify(arr, n, largest);",
				"    }",
				"}",
				"void heapSort(int[] arr) {",
				"    int n = arr.length;",
				"    for (int i = n / 2 - 1; i >= 0; i--) {",
				"        heapify(arr, n, i);",
				"    }",
				"    for (int i = n - 1; i > 0; i--) {",
				"        swap(arr, 0, i);",
				"        heapify(arr, i, 0);",
				"    }",
				"}",
			},
			Points: map[string][]int{
				Heapify: {1, 2, 3}, CompareLeft: {4, 5}, CompareRight: {7, 8}, Swap: {10, 11}, Sift: {12},
				Build: {17, 18}, Extract: {20, 21}, Reheap: {22}, Done: {24},
			},
		},
	},
	"linear": {
		LangCpp: {
			Algorithm: "linear", Language: LangCpp,
			Lines: []string{
				"int linearSearch(const vector<int>& arr, int target) {",
				"    for (int i = 0; i < arr.size(); i++) {",
				"        if (arr[i] == target) {",
				"            return i;",
				"        }",
				"    }",
				"    return -1;",
				"}",
			},
			Points: map[string][]int{
				Probe: {1, 2}, Found: {3}, Missing: {6},
			},
		},
		LangJava: {
			Algorithm: "linear", Language: LangJava,
			Lines: []string{
				"int linearSearch(int[] arr, int target) {",
				"    for (int i = 0; i < arr.length; i++) {",
				"        if (arr[i] == target) {",
				"            return i;",
				"        }",
				"    }",
				"    return -1;",
				"}",
			},
			Points: map[string][]int{
				Probe: {1, 2}, Found: {3}, Missing: {6},
			},
		},
	},
	"binary": {
		LangCpp: {
			Algorithm: "binary", Language: LangCpp,
			Lines: []string{
				"int binarySearch(const vector<int>& arr, int target, int start, int end) {",
				"    if (start > end) return -1;",
				"    int mid = (start + end) / 2;",
				"    if (arr[mid] == target) return mid;",
				"    if (target < arr[mid])",
				"        return binarySearch(arr, target, start, mid - 1);",
				"    return binarySearch(arr, target, mid + 1, end);",
				"}",
			},
			Points: map[string][]int{
				Probe: {2, 3}, Found: {3}, GoLeft: {4, 5}, GoRight: {6}, Missing: {1},
			},
		},
		LangJava: {
			Algorithm: "binary", Language: LangJava,
			Lines: []string{
				"int binarySearch(int[] arr, int target, int start, int end) {",
				"    if (start > end) return -1;",
				"    int mid = (start + end) / 2;",
				"    if (arr[mid] == target) return mid;",
				"    if (target < arr[mid])",
				"        return binarySearch(arr, target, start, mid - 1);",
				"    return binarySearch(arr, target, mid + 1, end);",
				"}",
			},
			Points: map[string][]int{
				Probe: {2, 3}, Found: {3}, GoLeft: {4, 5}, GoRight: {6}, Missing: {1},
			},
		},
	},
}
